// Package web 打包服务端渲染所需的 HTML 模板。
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates 解析全部内嵌模板，模板以文件名注册，例如 "index.html"。
func Templates(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
}
