package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillpost/internal/auth"
	"github.com/quillpost/internal/db"
	"github.com/quillpost/internal/logger"
	"github.com/quillpost/internal/service"
	"github.com/quillpost/internal/session"
	"gorm.io/gorm"
)

// IdentityResolver 将会话中保存的用户 ID 还原为用户记录。
type IdentityResolver interface {
	ResolveIdentity(id uint) (*db.User, error)
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	users      *service.UserService
	posts      *service.PostService
	comments   *service.CommentService
	identities IdentityResolver
}

// NewAPI constructs a handler set with shared services.
// Accounts registered with adminEmail receive the admin role.
func NewAPI(gdb *gorm.DB, hasher *auth.Hasher, adminEmail string) *API {
	users := service.NewUserService(gdb, hasher, adminEmail)
	return &API{
		users:      users,
		posts:      service.NewPostService(gdb),
		comments:   service.NewCommentService(gdb),
		identities: users,
	}
}

// WithIdentityResolver 替换会话身份解析器。
func (a *API) WithIdentityResolver(resolver IdentityResolver) *API {
	a.identities = resolver
	return a
}

// Users exposes the user service for bootstrap tasks.
func (a *API) Users() *service.UserService {
	return a.users
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	user := currentUser(c)
	pref := a.requestLocale(c)

	flashes, err := session.Flashes(c)
	if err != nil {
		logger.Warningf("save session after reading flashes: %v", err)
	}

	payload["currentUser"] = user
	payload["isAdmin"] = auth.AuthorizePostMutation(user) == auth.Allow
	payload["flashes"] = flashes
	payload["csrfToken"] = session.StoredCSRFToken(c)
	payload["htmlLang"] = pref.HTMLLang
	payload["year"] = time.Now().Year()
	if _, exists := payload["errors"]; !exists {
		payload["errors"] = map[string]string{}
	}

	c.HTML(status, template, payload)
}

func (a *API) renderError(c *gin.Context, status int, message string) {
	a.renderHTML(c, status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
	})
}

func (a *API) renderNotFound(c *gin.Context) {
	a.renderError(c, http.StatusNotFound, a.text(c, "The requested post does not exist.", "文章不存在"))
}

func (a *API) renderInternalError(c *gin.Context, op string, err error) {
	logger.Errorf("%s: %v", op, err)
	c.Error(err)
	a.renderError(c, http.StatusInternalServerError, a.text(c, "Something went wrong. Please try again later.", "服务器开小差了，请稍后再试"))
}

// flashRedirect 记录一次性提示后重定向。
func (a *API) flashRedirect(c *gin.Context, message, location string) {
	if err := session.AddFlash(c, message); err != nil {
		logger.Warningf("save flash: %v", err)
	}
	c.Redirect(http.StatusFound, location)
}
