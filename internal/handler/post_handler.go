package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillpost/internal/db"
	"github.com/quillpost/internal/logger"
	"github.com/quillpost/internal/service"
)

// ShowPostList 渲染首页文章列表
func (a *API) ShowPostList(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		a.renderInternalError(c, "list posts", err)
		return
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"title": a.text(c, "Home", "首页"),
		"posts": posts,
	})
}

// ShowPost 渲染文章详情及评论
func (a *API) ShowPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	post, ok := a.loadPost(c, id)
	if !ok {
		return
	}

	a.renderPost(c, http.StatusOK, post, commentForm{}, nil)
}

// AddComment 为文章追加评论，匿名访客会被引导去登录。
func (a *API) AddComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	user := currentUser(c)
	if user == nil {
		a.flashRedirect(c, a.text(c, "Please log-in before commenting", "请先登录再发表评论"), "/login")
		return
	}

	var form commentForm
	fieldErrs, err := bindForm(c, &form)
	if err != nil {
		a.renderError(c, http.StatusBadRequest, a.text(c, "Malformed form submission.", "表单格式不正确"))
		return
	}
	if len(fieldErrs) > 0 {
		post, ok := a.loadPost(c, id)
		if !ok {
			return
		}
		a.renderPost(c, http.StatusBadRequest, post, form, fieldErrs)
		return
	}

	if _, err := a.comments.Create(id, user.ID, form.Body); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			a.renderNotFound(c)
		case errors.Is(err, service.ErrCommentBodyRequired):
			post, ok := a.loadPost(c, id)
			if !ok {
				return
			}
			a.renderPost(c, http.StatusBadRequest, post, form, map[string]string{
				"body": "This field is required.",
			})
		default:
			a.renderInternalError(c, "create comment", err)
		}
		return
	}

	c.Redirect(http.StatusFound, postPath(id))
}

// ShowNewPost 渲染新建文章表单
func (a *API) ShowNewPost(c *gin.Context) {
	a.renderPostForm(c, http.StatusOK, postForm{}, nil, false, 0)
}

// CreatePost 创建新文章，作者为当前管理员。
func (a *API) CreatePost(c *gin.Context) {
	var form postForm
	fieldErrs, err := bindForm(c, &form)
	if err != nil {
		a.renderError(c, http.StatusBadRequest, a.text(c, "Malformed form submission.", "表单格式不正确"))
		return
	}
	if len(fieldErrs) > 0 {
		a.renderPostForm(c, http.StatusBadRequest, form, fieldErrs, false, 0)
		return
	}

	post, err := a.posts.Create(form.input(), currentUser(c).ID)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			a.renderPostForm(c, http.StatusConflict, form, a.duplicateTitleErrors(c), false, 0)
			return
		}
		a.renderInternalError(c, "create post", err)
		return
	}

	logger.Infof("post %d created by user %d", post.ID, post.AuthorID)
	c.Redirect(http.StatusFound, "/")
}

// ShowEditPost 渲染预填充的编辑表单
func (a *API) ShowEditPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	post, ok := a.loadPost(c, id)
	if !ok {
		return
	}

	form := postForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	a.renderPostForm(c, http.StatusOK, form, nil, true, post.ID)
}

// UpdatePost 保存编辑后的文章，作者与发布日期保持不变。
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	var form postForm
	fieldErrs, err := bindForm(c, &form)
	if err != nil {
		a.renderError(c, http.StatusBadRequest, a.text(c, "Malformed form submission.", "表单格式不正确"))
		return
	}
	if len(fieldErrs) > 0 {
		exists, err := a.posts.Exists(id)
		if err != nil {
			a.renderInternalError(c, "check post", err)
			return
		}
		if !exists {
			a.renderNotFound(c)
			return
		}
		a.renderPostForm(c, http.StatusBadRequest, form, fieldErrs, true, id)
		return
	}

	post, err := a.posts.Update(id, form.input())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			a.renderNotFound(c)
		case errors.Is(err, service.ErrDuplicateTitle):
			a.renderPostForm(c, http.StatusConflict, form, a.duplicateTitleErrors(c), true, id)
		default:
			a.renderInternalError(c, "update post", err)
		}
		return
	}

	c.Redirect(http.StatusFound, postPath(post.ID))
}

// DeletePost 删除文章及其全部评论
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	if err := a.posts.Delete(id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderNotFound(c)
			return
		}
		a.renderInternalError(c, "delete post", err)
		return
	}

	logger.Infof("post %d deleted by user %d", id, currentUser(c).ID)
	c.Redirect(http.StatusSeeOther, "/")
}

func (a *API) loadPost(c *gin.Context, id uint) (*db.BlogPost, bool) {
	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderNotFound(c)
		} else {
			a.renderInternalError(c, "load post", err)
		}
		return nil, false
	}
	return post, true
}

func (a *API) renderPost(c *gin.Context, status int, post *db.BlogPost, form commentForm, fieldErrs map[string]string) {
	data := gin.H{
		"title":    post.Title,
		"post":     post,
		"comments": post.Comments,
		"form":     form,
	}
	if fieldErrs != nil {
		data["errors"] = fieldErrs
	}
	a.renderHTML(c, status, "post.html", data)
}

func (a *API) renderPostForm(c *gin.Context, status int, form postForm, fieldErrs map[string]string, editing bool, id uint) {
	heading := a.text(c, "New Post", "新建文章")
	action := "/new-post"
	if editing {
		heading = a.text(c, "Edit Post", "编辑文章")
		action = fmt.Sprintf("/edit-post/%d", id)
	}

	data := gin.H{
		"title":   heading,
		"heading": heading,
		"action":  action,
		"editing": editing,
		"form":    form,
	}
	if fieldErrs != nil {
		data["errors"] = fieldErrs
	}
	a.renderHTML(c, status, "make-post.html", data)
}

func (a *API) duplicateTitleErrors(c *gin.Context) map[string]string {
	return map[string]string{
		"title": a.text(c, "A post with this title already exists.", "已存在同名文章"),
	}
}

func (f postForm) input() service.PostInput {
	return service.PostInput{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		ImgURL:   f.ImgURL,
		Body:     f.Body,
	}
}

func postPath(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}
