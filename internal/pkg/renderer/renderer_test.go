package renderer

import (
	"context"
	"testing"
)

func TestHTMLBackendPassthrough(t *testing.T) {
	b := NewHTMLBackend()

	html := "<html><body>你好</body></html>"
	data, err := b.RenderToArtifact(context.Background(), html, "A4")
	if err != nil {
		t.Fatalf("RenderToArtifact error: %v", err)
	}
	if string(data) != html {
		t.Fatalf("expected passthrough, got %q", data)
	}
	if b.FileExt() != "html" {
		t.Fatalf("unexpected ext %q", b.FileExt())
	}
}

func TestPercentEncodeForDataURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc-_.~", "abc-_.~"},
		{"a b", "a%20b"},
		{"<p>", "%3Cp%3E"},
		{"#", "%23"},
		{"中", "%E4%B8%AD"}, // 多字节按 UTF-8 逐字节编码
	}
	for _, c := range cases {
		if got := percentEncodeForDataURL(c.in); got != c.want {
			t.Fatalf("percentEncodeForDataURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
