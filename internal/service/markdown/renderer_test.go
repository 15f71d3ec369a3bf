package markdown

import (
	"strings"
	"testing"
)

func TestRenderHeadings(t *testing.T) {
	got := Render("# 一级\n## 二级\n### 三级")
	for _, want := range []string{"<h1>一级</h1>", "<h2>二级</h2>", "<h3>三级</h3>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}

func TestRenderListItemsNotWrapped(t *testing.T) {
	got := Render("- 第一项\n- 第二项")
	if !strings.Contains(got, "<li>第一项</li>") || !strings.Contains(got, "<li>第二项</li>") {
		t.Fatalf("missing list items: %q", got)
	}
	// 该方言不把连续列表项包进 ul
	if strings.Contains(got, "<ul>") {
		t.Fatalf("unexpected ul wrapper: %q", got)
	}
}

func TestRenderParagraphAndBreak(t *testing.T) {
	got := Render("第一段\n\n第二段")
	if !strings.Contains(got, "<p>第一段</p>") || !strings.Contains(got, "<p>第二段</p>") {
		t.Fatalf("missing paragraphs: %q", got)
	}
	if !strings.Contains(got, "<br/>") {
		t.Fatalf("missing explicit break: %q", got)
	}
}

func TestRenderFencedCodeVerbatim(t *testing.T) {
	got := Render("```\n# not a heading\n- not a list\nX\n```")
	if strings.Contains(got, "<h1>") || strings.Contains(got, "<li>") {
		t.Fatalf("fence content was parsed: %q", got)
	}
	if !strings.Contains(got, "<pre><code>") || !strings.Contains(got, "</code></pre>") {
		t.Fatalf("missing pre/code container: %q", got)
	}
	if !strings.Contains(got, "# not a heading\n") || !strings.Contains(got, "X\n") {
		t.Fatalf("fence content not verbatim: %q", got)
	}
}

func TestRenderUnterminatedFenceClosed(t *testing.T) {
	got := Render("```\ncode line")
	if !strings.Contains(got, "</code></pre>") {
		t.Fatalf("unterminated fence not closed: %q", got)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	got := Render("<script>alert(1)</script>\n```\n<b>raw</b>\n```")
	if strings.Contains(got, "<script>") || strings.Contains(got, "<b>") {
		t.Fatalf("raw html leaked: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") || !strings.Contains(got, "&lt;b&gt;") {
		t.Fatalf("content not escaped: %q", got)
	}
}

func TestRenderHeadingInsideTextNotParsed(t *testing.T) {
	got := Render("句中 # 井号不是标题")
	if strings.Contains(got, "<h1>") {
		t.Fatalf("mid-line hash treated as heading: %q", got)
	}
	if !strings.Contains(got, "<p>") {
		t.Fatalf("expected paragraph: %q", got)
	}
}
