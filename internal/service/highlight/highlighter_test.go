package highlight

import (
	"strings"
	"testing"

	"github.com/codewright/backend/internal/domain"
)

func TestHighlightKnownLanguage(t *testing.T) {
	h := NewHighlighter()

	block := h.Highlight(1, "main.go", "package main\n\nfunc main() {}\n", "go")
	if block.Mode != domain.ModeHighlighted {
		t.Fatalf("expected highlighted mode, got %s", block.Mode)
	}
	if block.Language != "go" {
		t.Fatalf("expected language go, got %s", block.Language)
	}
	if block.LineCount != 3 {
		t.Fatalf("expected 3 lines, got %d", block.LineCount)
	}
	if !strings.Contains(block.HTML, "<pre") {
		t.Fatalf("expected pre block in output: %s", block.HTML)
	}
}

func TestHighlightUnknownLanguageFallsBack(t *testing.T) {
	h := NewHighlighter()

	block := h.Highlight(2, "mystery.xyz", "hello\nworld", "no-such-language-xyz")
	if block.Mode != domain.ModeFallback {
		t.Fatalf("expected fallback mode, got %s", block.Mode)
	}
	if block.Language != FallbackLanguage {
		t.Fatalf("expected fallback language, got %s", block.Language)
	}
	if block.LineCount != 2 {
		t.Fatalf("expected 2 lines, got %d", block.LineCount)
	}
}

func TestHighlightTextIsEscaped(t *testing.T) {
	h := NewHighlighter()

	block := h.Highlight(3, "note.txt", "<script>alert(1)</script>", "text")
	if block.Mode != domain.ModeFallback {
		t.Fatalf("expected fallback mode, got %s", block.Mode)
	}
	if strings.Contains(block.HTML, "<script>") {
		t.Fatalf("raw html leaked into output: %s", block.HTML)
	}
	if !strings.Contains(block.HTML, "&lt;script&gt;") {
		t.Fatalf("expected escaped content: %s", block.HTML)
	}
}

func TestCountLines(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n", 1},
		{"\n\n", 2},
	}
	for _, c := range cases {
		if got := CountLines(c.content); got != c.want {
			t.Fatalf("CountLines(%q) = %d, want %d", c.content, got, c.want)
		}
	}
}

// 行数统计与高亮是否成功无关
func TestLineCountIndependentOfMode(t *testing.T) {
	h := NewHighlighter()
	content := "x = 1\ny = 2\nz = 3"

	highlighted := h.Highlight(1, "a.py", content, "python")
	fallback := h.Highlight(1, "a.py", content, "text")
	if highlighted.LineCount != fallback.LineCount {
		t.Fatalf("line counts diverge: %d vs %d", highlighted.LineCount, fallback.LineCount)
	}
	if highlighted.LineCount != 3 {
		t.Fatalf("expected 3 lines, got %d", highlighted.LineCount)
	}
}
