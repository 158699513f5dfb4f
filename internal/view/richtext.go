package view

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	richTextEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// RenderRichText 将文章或评论正文渲染为安全的 HTML。
// 正文可以是编辑器产出的 HTML 片段，也可以是 Markdown；渲染结果统一经过 UGC 策略过滤。
func RenderRichText(body string) template.HTML {
	var buf bytes.Buffer
	if err := richTextEngine.Convert([]byte(body), &buf); err != nil {
		return template.HTML(sanitizer.Sanitize(template.HTMLEscapeString(body)))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
