package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillpost/internal/auth"
	"github.com/quillpost/internal/logger"
	"github.com/quillpost/internal/service"
	"github.com/quillpost/internal/session"
)

// ShowRegister 渲染注册页面
func (a *API) ShowRegister(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "register.html", gin.H{
		"title": a.text(c, "Register", "注册"),
		"form":  registerForm{},
	})
}

// Register 创建账号并登录。邮箱已注册时提示并跳转到登录页。
func (a *API) Register(c *gin.Context) {
	var form registerForm
	fieldErrs, err := bindForm(c, &form)
	if err != nil {
		a.renderError(c, http.StatusBadRequest, a.text(c, "Malformed form submission.", "表单格式不正确"))
		return
	}
	if len(fieldErrs) > 0 {
		form.Password = ""
		a.renderHTML(c, http.StatusBadRequest, "register.html", gin.H{
			"title":  a.text(c, "Register", "注册"),
			"form":   form,
			"errors": fieldErrs,
		})
		return
	}

	user, err := a.users.Register(service.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			a.flashRedirect(c, a.text(c, "Email is already registered. Please Log in.", "该邮箱已注册，请直接登录"), "/login")
		case errors.Is(err, auth.ErrPasswordTooLong), errors.Is(err, auth.ErrEmptyPassword):
			form.Password = ""
			a.renderHTML(c, http.StatusBadRequest, "register.html", gin.H{
				"title":  a.text(c, "Register", "注册"),
				"form":   form,
				"errors": map[string]string{"password": "Please enter a password of at most 72 bytes"},
			})
		default:
			a.renderInternalError(c, "register user", err)
		}
		return
	}

	if err := session.SetLoginUser(c, user.ID); err != nil {
		a.renderInternalError(c, "save session", err)
		return
	}
	logger.Infof("registered user %d (%s)", user.ID, user.Role)
	c.Redirect(http.StatusFound, "/")
}

// ShowLogin 渲染登录页面
func (a *API) ShowLogin(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": a.text(c, "Log In", "登录"),
		"form":  loginForm{},
	})
}

// Login 校验邮箱与密码，成功后建立会话。
func (a *API) Login(c *gin.Context) {
	var form loginForm
	fieldErrs, err := bindForm(c, &form)
	if err != nil {
		a.renderError(c, http.StatusBadRequest, a.text(c, "Malformed form submission.", "表单格式不正确"))
		return
	}
	password := form.Password
	form.Password = ""
	if len(fieldErrs) > 0 {
		a.renderHTML(c, http.StatusBadRequest, "login.html", gin.H{
			"title":  a.text(c, "Log In", "登录"),
			"form":   form,
			"errors": fieldErrs,
		})
		return
	}

	user, err := a.users.Authenticate(form.Email, password)
	if err != nil {
		var notice string
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			notice = a.text(c, "Email not found. Please try another email, or register.", "邮箱不存在，请更换邮箱或先注册")
		case errors.Is(err, service.ErrPasswordMismatch):
			notice = a.text(c, "Password does not match, please try again.", "密码错误，请重试")
		default:
			a.renderInternalError(c, "authenticate user", err)
			return
		}
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title":  a.text(c, "Log In", "登录"),
			"form":   form,
			"notice": notice,
		})
		return
	}

	if err := session.SetLoginUser(c, user.ID); err != nil {
		a.renderInternalError(c, "save session", err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	if err := session.ClearSession(c); err != nil {
		logger.Warningf("clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}
