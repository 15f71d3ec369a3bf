// Package renderer 把组装好的 HTML 文档转成最终交付产物
// 渲染后端是可插拔的能力，排版算法是第三方的事，这里只约定契约
package renderer

import (
	"context"
	"errors"
)

// ErrRenderFailed 渲染后端的统一失败信号，细节包在错误链里
var ErrRenderFailed = errors.New("render backend failed")

// Backend 渲染后端契约
// pageFormat 透传给后端（A4、Letter），后端不认识时用自己的默认值
type Backend interface {
	RenderToArtifact(ctx context.Context, html string, pageFormat string) ([]byte, error)
	// FileExt 产物文件的扩展名，不带点
	FileExt() string
}

// HTMLBackend 直通后端：组装产物本身就是自包含 HTML，原样落盘
// 没有 chromium 的环境用它兜底
type HTMLBackend struct{}

func NewHTMLBackend() *HTMLBackend {
	return &HTMLBackend{}
}

func (b *HTMLBackend) RenderToArtifact(_ context.Context, html string, _ string) ([]byte, error) {
	return []byte(html), nil
}

func (b *HTMLBackend) FileExt() string {
	return "html"
}
