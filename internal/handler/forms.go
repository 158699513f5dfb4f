package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type registerForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,max=72"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type postForm struct {
	Title    string `form:"title" binding:"required"`
	Subtitle string `form:"subtitle" binding:"required"`
	ImgURL   string `form:"img_url" binding:"required,url"`
	Body     string `form:"body" binding:"required"`
}

type commentForm struct {
	Body string `form:"body" binding:"required"`
}

// fieldMessages 覆盖个别字段的提示文案，键为 "表单字段.校验规则"。
var fieldMessages = map[string]string{
	"name.required":     "Please enter your display name",
	"email.required":    "Please enter your email",
	"email.email":       "Valid Email Required",
	"password.required": "Please enter a password",
	"img_url.url":       "Invalid URL.",
}

// bindForm 绑定并校验表单。校验失败时返回按表单字段名索引的错误信息。
func bindForm(c *gin.Context, form any) (map[string]string, error) {
	err := c.ShouldBind(form)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	return fieldErrors(form, verrs), nil
}

func fieldErrors(form any, verrs validator.ValidationErrors) map[string]string {
	formType := reflect.TypeOf(form)
	for formType.Kind() == reflect.Pointer {
		formType = formType.Elem()
	}

	messages := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := strings.ToLower(fe.StructField())
		if field, ok := formType.FieldByName(fe.StructField()); ok {
			if tag := field.Tag.Get("form"); tag != "" {
				key = tag
			}
		}
		if _, exists := messages[key]; exists {
			continue
		}
		messages[key] = messageFor(key, fe)
	}
	return messages
}

func messageFor(key string, fe validator.FieldError) string {
	if msg, ok := fieldMessages[key+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
