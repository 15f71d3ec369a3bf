package renderer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"k8s.io/klog/v2"
)

// 纸张尺寸，英寸
var paperSizes = map[string][2]float64{
	"A4":     {8.27, 11.69},
	"Letter": {8.5, 11.0},
}

// ChromeBackend 通过无头 Chrome 的 PrintToPDF 生成 PDF
type ChromeBackend struct {
	execPath string
	timeout  time.Duration
}

func NewChromeBackend(execPath string) *ChromeBackend {
	return &ChromeBackend{
		execPath: execPath,
		timeout:  60 * time.Second,
	}
}

func (b *ChromeBackend) FileExt() string {
	return "pdf"
}

// Available 检查 chromium 是否可用，不可用时导出服务会拒绝 pdf 类型
func (b *ChromeBackend) Available() bool {
	if b.execPath != "" {
		if _, err := exec.LookPath(b.execPath); err == nil {
			return true
		}
		return false
	}
	for _, name := range []string{"chromium-browser", "chromium", "google-chrome"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func (b *ChromeBackend) RenderToArtifact(ctx context.Context, html string, pageFormat string) ([]byte, error) {
	size, ok := paperSizes[pageFormat]
	if !ok {
		klog.V(6).Infof("未知纸张 %q，回退 A4", pageFormat)
		size = paperSizes["A4"]
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// data URL 需要正确的百分号编码，url.QueryEscape 会把空格编成 +
	dataURL := "data:text/html;charset=utf-8," + percentEncodeForDataURL(html)

	var pdfData []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(size[0]).
				WithPaperHeight(size[1]).
				WithMarginTop(0.75).
				WithMarginBottom(0.75).
				WithMarginLeft(0.75).
				WithMarginRight(0.75).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return pdfData, nil
}

// percentEncodeForDataURL 按 RFC 3986 对 data URL 内容做百分号编码
func percentEncodeForDataURL(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == '~':
			result.WriteRune(r)
		case r == ' ':
			result.WriteString("%20")
		default:
			for _, b := range []byte(string(r)) {
				result.WriteString(fmt.Sprintf("%%%02X", b))
			}
		}
	}
	return result.String()
}
