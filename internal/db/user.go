package db

import "gorm.io/gorm"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User 定义了用户模型
type User struct {
	gorm.Model
	Name     string     `gorm:"not null"`
	Email    string     `gorm:"uniqueIndex;not null"`
	Password string     `gorm:"not null" json:"-"`
	Role     string     `gorm:"not null;default:member"`
	Posts    []BlogPost `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Comments []Comment  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// IsAdmin 报告用户是否持有管理员角色。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
