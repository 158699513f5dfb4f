package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillpost/internal/auth"
	"github.com/quillpost/internal/logger"
	"github.com/quillpost/internal/service"
	"github.com/quillpost/internal/session"
)

const (
	csrfFormField  = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
)

// LoadIdentity 在每个请求上通过注入的解析器还原当前用户。会话指向不存在的用户时清除会话。
func (a *API) LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := session.GetLoginUserID(c)
		if !ok {
			c.Next()
			return
		}

		user, err := a.identities.ResolveIdentity(userID)
		switch {
		case err == nil:
			c.Set(currentUserContextKey, user)
		case errors.Is(err, service.ErrUserNotFound):
			logger.Noticef("session references missing user %d, clearing session", userID)
			if clearErr := session.ClearSession(c); clearErr != nil {
				logger.Warningf("clear stale session: %v", clearErr)
			}
		default:
			logger.Errorf("resolve identity %d: %v", userID, err)
		}
		c.Next()
	}
}

// AdminRequired 仅允许管理员访问文章写操作，其他身份（包括匿名）一律返回 403。
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if auth.AuthorizePostMutation(user) != auth.Allow {
			if user != nil {
				logger.Warningf("forbidden %s %s for user %d", c.Request.Method, c.Request.URL.Path, user.ID)
			} else {
				logger.Warningf("forbidden %s %s for anonymous visitor", c.Request.Method, c.Request.URL.Path)
			}
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// CSRFToken 确保每个会话都持有 CSRF 令牌，供表单渲染使用。
func CSRFToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := session.CSRFToken(c); err != nil {
			logger.Warningf("issue csrf token: %v", err)
		}
		c.Next()
	}
}

// VerifyCSRF 校验表单字段或请求头中的令牌与会话一致。
func VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := session.StoredCSRFToken(c)
		provided := c.GetHeader(csrfHeaderName)
		if provided == "" {
			provided = c.PostForm(csrfFormField)
		}
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Next()
	}
}
