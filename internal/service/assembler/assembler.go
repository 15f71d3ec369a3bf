// Package assembler 把渲染后的条目组装成单个自包含的 HTML 文档
// 样式全部内联，产物可以直接交给渲染后端或原样下发
package assembler

import (
	"fmt"
	stdhtml "html"
	"strings"
	"time"

	"github.com/codewright/backend/internal/domain"
	"github.com/codewright/backend/internal/model"
)

// Options 导出选项，创建任务时快照进任务记录
type Options struct {
	IncludeTOC     bool   `json:"include_toc"`
	IncludeSummary bool   `json:"include_summary"`
	Watermark      bool   `json:"watermark"`
	PageFormat     string `json:"page_format"`
}

func DefaultOptions() Options {
	return Options{
		IncludeTOC:     true,
		IncludeSummary: true,
		Watermark:      false,
		PageFormat:     "A4",
	}
}

const watermarkText = "Generated by CodeWright"

const timeLayout = "2006年01月02日 15:04:05"

// Assembler 文档组装器
// 时钟可注入，同样的输入除时间戳外输出逐字节一致
type Assembler struct {
	now func() time.Time
}

func New() *Assembler {
	return &Assembler{now: time.Now}
}

func NewWithClock(now func() time.Time) *Assembler {
	return &Assembler{now: now}
}

// Assemble 固定顺序组装：头部、目录、条目、统计、水印
// 选项只控制取舍，不改变顺序
func (a *Assembler) Assemble(project *model.Project, blocks []domain.RenderedBlock, opts Options) string {
	generatedAt := a.now()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"zh-CN\">\n<head>\n<meta charset=\"UTF-8\">\n")
	b.WriteString("<title>" + stdhtml.EscapeString(project.Name) + "</title>\n")
	b.WriteString("<style>\n" + documentCSS + "</style>\n</head>\n<body>\n")

	// 1. 文档头部
	b.WriteString("<div class=\"document-header\">\n")
	b.WriteString("<h1 class=\"document-title\">软件著作权申请材料</h1>\n")
	b.WriteString("<h2 class=\"project-name\">" + stdhtml.EscapeString(project.Name) + "</h2>\n")
	b.WriteString("<div class=\"document-meta\">生成时间：" + generatedAt.Format(timeLayout) + "</div>\n")
	b.WriteString("<div class=\"document-meta\">项目类型：" + projectTypeLabel(project.Type) + "</div>\n")
	b.WriteString(fmt.Sprintf("<div class=\"document-meta\">条目数量：%d</div>\n", len(blocks)))
	b.WriteString("</div>\n")

	// 2. 目录，单条目时省略
	if opts.IncludeTOC && len(blocks) > 1 {
		b.WriteString("<div class=\"toc\">\n<h2 class=\"toc-title\">目录</h2>\n<ul class=\"toc-list\">\n")
		for i, block := range blocks {
			// 锚点按位置编号，条目重排后下次导出锚点会变，这是接受的简化
			b.WriteString(fmt.Sprintf("<li class=\"toc-item\"><a href=\"#section-%d\" class=\"toc-link\">%d. %s</a></li>\n",
				i+1, i+1, stdhtml.EscapeString(block.Title)))
		}
		b.WriteString("</ul>\n</div>\n")
	}

	// 3. 条目内容，锚点与目录一致
	for i, block := range blocks {
		b.WriteString(fmt.Sprintf("<div class=\"file-section\" id=\"section-%d\">\n", i+1))
		b.WriteString(fmt.Sprintf("<h3 class=\"file-header\">%d. %s</h3>\n", i+1, stdhtml.EscapeString(block.Title)))
		if block.Mode != domain.ModeMarkdown {
			b.WriteString("<div class=\"file-meta\">语言：" + stdhtml.EscapeString(block.Language) +
				fmt.Sprintf("　行数：%d</div>\n", block.LineCount))
		}
		b.WriteString("<div class=\"file-content\">\n")
		b.WriteString(block.HTML)
		b.WriteString("\n</div>\n</div>\n")
	}

	// 4. 统计信息
	if opts.IncludeSummary {
		totalLines := 0
		for _, block := range blocks {
			totalLines += block.LineCount
		}
		b.WriteString("<div class=\"stats-section\">\n<h2 class=\"stats-title\">统计信息</h2>\n<table class=\"stats-table\">\n")
		b.WriteString("<tr><th>项目名称</th><td>" + stdhtml.EscapeString(project.Name) + "</td></tr>\n")
		b.WriteString(fmt.Sprintf("<tr><th>条目数量</th><td>%d</td></tr>\n", len(blocks)))
		b.WriteString(fmt.Sprintf("<tr><th>总行数</th><td>%d</td></tr>\n", totalLines))
		b.WriteString("<tr><th>生成时间</th><td>" + generatedAt.Format(timeLayout) + "</td></tr>\n")
		b.WriteString("</table>\n</div>\n")
	}

	// 5. 水印
	if opts.Watermark {
		b.WriteString("<div class=\"watermark\">" + watermarkText + "</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func projectTypeLabel(projectType string) string {
	if projectType == "manual" {
		return "操作文档"
	}
	return "代码文件"
}

// documentCSS 打印样式，照顾 A4 分页
const documentCSS = `@page {
    size: A4;
    margin: 2cm;
}
body {
    font-family: "SimSun", "Microsoft YaHei", "PingFang SC", sans-serif;
    font-size: 12px;
    line-height: 1.6;
    color: #333;
    margin: 0;
    padding: 0;
}
.document-header {
    text-align: center;
    margin-bottom: 30px;
    padding-bottom: 20px;
    border-bottom: 2px solid #5c7cfa;
}
.document-title {
    font-size: 24px;
    font-weight: bold;
    color: #5c7cfa;
    margin: 0 0 10px 0;
}
.project-name {
    font-size: 18px;
    font-weight: bold;
    margin: 0 0 10px 0;
}
.document-meta {
    font-size: 10px;
    color: #666;
    margin: 5px 0;
}
.toc {
    background-color: #f8f9fa;
    padding: 15px;
    border-radius: 5px;
    margin-bottom: 25px;
    page-break-after: always;
}
.toc-title {
    font-size: 16px;
    font-weight: bold;
    color: #5c7cfa;
    margin: 0 0 10px 0;
}
.toc-list {
    list-style: none;
    padding: 0;
    margin: 0;
}
.toc-item {
    margin: 5px 0;
}
.toc-link {
    color: #5c7cfa;
    text-decoration: none;
    font-size: 11px;
}
.file-section {
    margin-bottom: 25px;
    page-break-before: always;
}
.file-header {
    background-color: #5c7cfa;
    color: white;
    padding: 8px 12px;
    font-weight: bold;
    font-size: 14px;
    margin: 0;
    border-radius: 3px 3px 0 0;
}
.file-meta {
    font-size: 10px;
    color: #666;
    padding: 5px 12px;
    background-color: #f0f0f0;
}
.file-content {
    border: 1px solid #e4e7ed;
    border-top: none;
    border-radius: 0 0 3px 3px;
    overflow: hidden;
}
.file-content pre {
    margin: 0;
    padding: 10px;
    font-family: "Consolas", "Monaco", "Courier New", monospace;
    font-size: 9px;
    line-height: 1.4;
    background-color: #f8f9fa;
    white-space: pre-wrap;
    word-wrap: break-word;
}
.stats-section {
    margin-top: 30px;
    padding: 15px;
    background-color: #f8f9fa;
    border-radius: 5px;
    page-break-inside: avoid;
}
.stats-title {
    font-size: 14px;
    font-weight: bold;
    color: #5c7cfa;
    margin: 0 0 10px 0;
}
.stats-table {
    width: 100%;
    border-collapse: collapse;
    font-size: 10px;
}
.stats-table th,
.stats-table td {
    border: 1px solid #ddd;
    padding: 5px 8px;
    text-align: left;
}
.stats-table th {
    background-color: #f0f0f0;
    font-weight: bold;
    width: 120px;
}
.watermark {
    position: fixed;
    bottom: 10px;
    right: 10px;
    font-size: 8px;
    color: #ccc;
}
`
