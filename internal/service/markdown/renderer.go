// Package markdown 实现操作文档章节使用的受限 markdown 渲染
// 只支持固定的几种结构：1-3级标题、列表项、围栏代码块、段落、空行
// 刻意不追求 CommonMark 兼容，输出是确定的
package markdown

import (
	stdhtml "html"
	"strings"
)

const fenceMarker = "```"

// Render 单趟从上到下渲染，唯一的状态是"是否在代码围栏内"
// 所有非围栏标记的内容都经过转义，正文中的原始 HTML 不会进入文档
func Render(text string) string {
	var b strings.Builder
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, fenceMarker) {
			if inFence {
				b.WriteString("</code></pre>\n")
			} else {
				b.WriteString("<pre><code>")
			}
			inFence = !inFence
			continue
		}

		if inFence {
			// 围栏内逐行原样输出，不再解析
			b.WriteString(stdhtml.EscapeString(line))
			b.WriteString("\n")
			continue
		}

		switch {
		case strings.HasPrefix(line, "### "):
			b.WriteString("<h3>" + stdhtml.EscapeString(strings.TrimPrefix(line, "### ")) + "</h3>\n")
		case strings.HasPrefix(line, "## "):
			b.WriteString("<h2>" + stdhtml.EscapeString(strings.TrimPrefix(line, "## ")) + "</h2>\n")
		case strings.HasPrefix(line, "# "):
			b.WriteString("<h1>" + stdhtml.EscapeString(strings.TrimPrefix(line, "# ")) + "</h1>\n")
		case strings.HasPrefix(line, "- "):
			// 连续列表项不合并进同一个 ul，这是该方言已知的简化
			b.WriteString("<li>" + stdhtml.EscapeString(strings.TrimPrefix(line, "- ")) + "</li>\n")
		case line == "":
			b.WriteString("<br/>\n")
		default:
			b.WriteString("<p>" + stdhtml.EscapeString(line) + "</p>\n")
		}
	}

	// 没闭合的围栏在文末隐式闭合
	if inFence {
		b.WriteString("</code></pre>\n")
	}

	return b.String()
}
