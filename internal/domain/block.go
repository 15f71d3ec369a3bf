package domain

// RenderMode 标记单个条目实际走过的渲染路径
// 显式标记而不是吞掉异常，测试可以断言降级是否发生
type RenderMode string

const (
	ModeHighlighted RenderMode = "highlighted" // chroma 高亮成功
	ModeFallback    RenderMode = "fallback"    // 降级为纯文本 pre 块
	ModeMarkdown    RenderMode = "markdown"    // 操作文档章节
)

// RenderedBlock 单个条目渲染后的中间结果，只在一次导出内使用，不落库
type RenderedBlock struct {
	ItemID    uint
	Title     string
	HTML      string
	Language  string
	LineCount int
	Mode      RenderMode
}
