package manuscript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-manuscript/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Test Options
// ---------------------------------------------------------------------------

func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) { c.pdf = p }
}

func withDOCXWriter(w docxWriter) Option {
	return func(c *Converter) { c.docx = w }
}

func withNow(t time.Time) Option {
	return func(c *Converter) { c.now = func() time.Time { return t } }
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	result   []byte
	err      error
	panicMsg string

	calls  int
	html   string
	opts   *pdfOptions
	closed bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.calls++
	m.html = htmlContent
	m.opts = opts
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

type mockDOCXWriter struct {
	err error
}

func (m *mockDOCXWriter) Write(ctx context.Context, doc *pipeline.Document, out io.Writer) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(out, "PK fake docx")
	return err
}

// ---------------------------------------------------------------------------
// PDF Fixture
// ---------------------------------------------------------------------------

// minimalPDF builds a well-formed PDF with the given number of blank pages,
// computing the cross-reference offsets as it writes.
func minimalPDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for range pages {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}
