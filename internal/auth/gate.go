package auth

import "github.com/quillpost/internal/db"

// Decision 是授权判定结果。
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// AuthorizePostMutation 判定当前身份能否创建、编辑或删除文章：仅管理员角色放行。
func AuthorizePostMutation(user *db.User) Decision {
	if user.IsAdmin() {
		return Allow
	}
	return Deny
}
