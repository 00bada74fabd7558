//go:build integration

package manuscript

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

func TestIntegration_ConvertPDF(t *testing.T) {
	conv := acquireConverter(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := conv.Convert(ctx, Input{Markdown: sampleManuscript, Formats: []Format{FormatPDF}})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	assertValidPDF(t, res.PDF)
	// Title page and TOC each end with a page break.
	if res.PDFPages < 3 {
		t.Errorf("PDFPages = %d, want at least 3", res.PDFPages)
	}
}

func TestIntegration_ConvertWithImages(t *testing.T) {
	conv := acquireConverter(t)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "img"), 0o750); err != nil {
		t.Fatal(err)
	}
	// 1x1 transparent GIF.
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	if err := os.WriteFile(filepath.Join(dir, "img", "implant.png"), gif, 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := conv.Convert(ctx, Input{Markdown: sampleManuscript, SourceDir: dir})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	assertValidPDF(t, res.PDF)
	if len(res.HTML) == 0 || len(res.DOCX) == 0 {
		t.Error("all formats should be produced")
	}
}

func TestIntegration_CanceledBeforeRender(t *testing.T) {
	conv := acquireConverter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := conv.Convert(ctx, Input{Markdown: sampleManuscript, Formats: []Format{FormatPDF}}); err == nil {
		t.Error("expected an error for a canceled context")
	}
}
