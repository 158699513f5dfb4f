// Package session 在 cookie 会话中保存登录用户 ID、一次性提示与 CSRF 令牌。
package session

import (
	"encoding/gob"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "quillpost_session"

	loginUserKey = "user_id"
	csrfTokenKey = "csrf_token"
)

func init() {
	gob.Register([]interface{}{})
}

// SetLoginUser 记录已登录用户的 ID。
func SetLoginUser(c *gin.Context, userID uint) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, userID)
	return s.Save()
}

// GetLoginUserID 返回会话中的用户 ID，匿名会话返回 false。
func GetLoginUserID(c *gin.Context) (uint, bool) {
	s := sessions.Default(c)
	id, ok := s.Get(loginUserKey).(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// ClearSession 清除会话中的全部数据。
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// AddFlash 追加一条在下一次渲染时展示的提示。
func AddFlash(c *gin.Context, message string) error {
	s := sessions.Default(c)
	s.AddFlash(message)
	return s.Save()
}

// Flashes 取出并清空待展示的提示。
func Flashes(c *gin.Context) ([]string, error) {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	messages := make([]string, 0, len(raw))
	for _, item := range raw {
		messages = append(messages, fmt.Sprint(item))
	}
	return messages, s.Save()
}

// CSRFToken 返回会话的 CSRF 令牌，不存在时生成并保存。
func CSRFToken(c *gin.Context) (string, error) {
	s := sessions.Default(c)
	if token, ok := s.Get(csrfTokenKey).(string); ok && token != "" {
		return token, nil
	}
	token := uuid.NewString()
	s.Set(csrfTokenKey, token)
	return token, s.Save()
}

// StoredCSRFToken 只读取已有令牌，不会生成新值。
func StoredCSRFToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(csrfTokenKey).(string)
	return token
}
