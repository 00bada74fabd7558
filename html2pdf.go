package manuscript

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-manuscript/internal/config"
	"github.com/alnah/go-manuscript/internal/fileutil"
	"github.com/alnah/go-manuscript/internal/process"
)

// pdfConverter prints an assembled HTML page to PDF bytes.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer prints an HTML file that already exists on disk.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds the page geometry for one render.
type pdfOptions struct {
	PaperSize string
	Margins   config.MarginsConfig // centimetres
}

// Paper dimensions in inches, as Chrome's print API expects.
var paperSizes = map[string][2]float64{
	"A4":     {8.27, 11.69},
	"Letter": {8.5, 11},
	"Legal":  {8.5, 14},
}

const cmPerInch = 2.54

// rodRenderer drives one headless Chrome through go-rod. The browser is
// started on the first render; rod downloads Chromium if none is installed.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// newLauncher honours ROD_BROWSER_BIN. A preinstalled browser and CI both
// imply a container-like host, where Chrome's sandbox is unavailable.
func newLauncher(getenv func(string) string) *launcher.Launcher {
	l := launcher.New()
	bin := getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if bin != "" || getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	return l
}

func (r *rodRenderer) start() error {
	if r.browser != nil {
		return nil
	}

	r.launcher = newLauncher(os.Getenv)
	controlURL, err := r.launcher.Launch()
	if err != nil {
		r.launcher = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		r.stop()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// stop kills the launched browser and everything it spawned.
func (r *rodRenderer) stop() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// Close shuts the browser down. It is safe to call when nothing was started.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.stop()
	return err
}

// loadTimeout is the renderer default, shortened by any context deadline.
func (r *rodRenderer) loadTimeout(ctx context.Context) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// RenderFromFile loads filePath through a file:// URL and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.start(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout, err := r.loadTimeout(ctx)
	if err != nil {
		return nil, err
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// buildPDFOptions maps page geometry onto Chrome print options. Unknown
// paper sizes print as A4, and nil options mean A4 with one-inch margins.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	if opts == nil {
		inch := config.MarginsConfig{Top: cmPerInch, Bottom: cmPerInch, Left: cmPerInch, Right: cmPerInch}
		opts = &pdfOptions{Margins: inch}
	}
	size, ok := config.CanonicalPaperSize(opts.PaperSize)
	if !ok {
		size = "A4"
	}
	dims := paperSizes[size]
	inches := func(cm float64) *float64 {
		v := cmToInches(cm)
		return &v
	}

	return &proto.PagePrintToPDF{
		PaperWidth:        &dims[0],
		PaperHeight:       &dims[1],
		MarginTop:         inches(opts.Margins.Top),
		MarginBottom:      inches(opts.Margins.Bottom),
		MarginLeft:        inches(opts.Margins.Left),
		MarginRight:       inches(opts.Margins.Right),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

func cmToInches(cm float64) float64 {
	return cm / cmPerInch
}

// rodConverter stages HTML on disk for a pdfRenderer.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF writes htmlContent to a temporary file and prints it. A file URL
// keeps relative image paths resolvable after path rewriting.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	page, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, page, opts)
}

// Close releases the renderer.
func (c *rodConverter) Close() error {
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Close()
}
