package highlight

import (
	"bytes"
	stdhtml "html"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"k8s.io/klog/v2"

	"github.com/codewright/backend/internal/domain"
)

// Highlighter 基于 chroma 的代码高亮器
// 任何一步失败都降级为纯文本 pre 块，绝不让单个文件拖垮整次导出
type Highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func NewHighlighter() *Highlighter {
	return &Highlighter{
		// 内联样式，产物自包含，不依赖外部样式表
		formatter: chromahtml.New(
			chromahtml.WithLineNumbers(true),
			chromahtml.BaseLineNumber(1),
			chromahtml.TabWidth(4),
		),
		style: styles.Get("github"),
	}
}

// Highlight 渲染单个代码条目
// language 为 text 或 chroma 不认识时走降级路径；行数始终按原始内容统计
func (h *Highlighter) Highlight(itemID uint, title, content, language string) domain.RenderedBlock {
	lineCount := CountLines(content)

	if language == FallbackLanguage {
		return h.fallback(itemID, title, content, lineCount)
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		klog.V(6).Infof("语言不支持，降级为纯文本: itemID=%d, language=%s", itemID, language)
		return h.fallback(itemID, title, content, lineCount)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		klog.V(6).Infof("代码分词失败，降级为纯文本: itemID=%d, language=%s, error=%v", itemID, language, err)
		return h.fallback(itemID, title, content, lineCount)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		klog.V(6).Infof("高亮输出失败，降级为纯文本: itemID=%d, language=%s, error=%v", itemID, language, err)
		return h.fallback(itemID, title, content, lineCount)
	}

	return domain.RenderedBlock{
		ItemID:    itemID,
		Title:     title,
		HTML:      buf.String(),
		Language:  language,
		LineCount: lineCount,
		Mode:      domain.ModeHighlighted,
	}
}

func (h *Highlighter) fallback(itemID uint, title, content string, lineCount int) domain.RenderedBlock {
	return domain.RenderedBlock{
		ItemID:    itemID,
		Title:     title,
		HTML:      "<pre><code>" + stdhtml.EscapeString(content) + "</code></pre>",
		Language:  FallbackLanguage,
		LineCount: lineCount,
		Mode:      domain.ModeFallback,
	}
}

// CountLines 统计原始内容行数，与高亮成功与否无关
// 末尾换行不额外计一行，空内容为 0 行
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			n++
		}
	}
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
