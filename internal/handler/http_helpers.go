package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillpost/internal/db"
)

const currentUserContextKey = "__current_user"

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// currentUser 返回 LoadIdentity 解析出的当前用户，匿名请求返回 nil。
func currentUser(c *gin.Context) *db.User {
	if value, exists := c.Get(currentUserContextKey); exists {
		if user, ok := value.(*db.User); ok {
			return user
		}
	}
	return nil
}
