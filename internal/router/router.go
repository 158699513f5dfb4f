package router

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/quillpost/internal/handler"
	"github.com/quillpost/internal/session"
	"github.com/quillpost/internal/view"
	"github.com/quillpost/web"
)

const sessionMaxAge = 30 * 24 * 60 * 60

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string, secureCookie bool) *gin.Engine {
	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(session.CookieName, store))
	r.Use(api.LocaleMiddleware())
	r.Use(api.LoadIdentity())
	r.Use(handler.CSRFToken())

	// 加载内嵌模板
	r.SetHTMLTemplate(template.Must(web.Templates(template.FuncMap{
		"richtext": view.RenderRichText,
	})))

	r.GET("/", api.ShowPostList)
	r.GET("/about", api.ShowAbout)
	r.GET("/contact", api.ShowContact)

	r.GET("/register", api.ShowRegister)
	r.POST("/register", handler.VerifyCSRF(), api.Register)
	r.GET("/login", api.ShowLogin)
	r.POST("/login", handler.VerifyCSRF(), api.Login)
	r.GET("/logout", api.Logout)

	r.GET("/post/:id", api.ShowPost)
	r.POST("/post/:id", handler.VerifyCSRF(), api.AddComment)

	// 文章写操作仅限管理员
	admin := r.Group("")
	admin.Use(api.AdminRequired())
	{
		admin.GET("/new-post", api.ShowNewPost)
		admin.POST("/new-post", handler.VerifyCSRF(), api.CreatePost)
		admin.GET("/edit-post/:id", api.ShowEditPost)
		admin.POST("/edit-post/:id", handler.VerifyCSRF(), api.UpdatePost)
		admin.DELETE("/delete/:id", handler.VerifyCSRF(), api.DeletePost)
		admin.POST("/delete/:id", handler.VerifyCSRF(), api.DeletePost)
	}

	return r
}
