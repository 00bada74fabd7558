// Package manuscript converts scientific and medical manuscripts written in
// an extended Markdown into HTML, DOCX and PDF.
//
// # Quick Start
//
// Create a converter, convert a manuscript, and close when done:
//
//	conv, err := manuscript.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, manuscript.Input{
//	    Markdown: "# Knee Arthroplasty\n\n## Methods\n\nText.",
//	})
//	if err != nil {
//	    log.Printf("some formats failed: %v", err)
//	}
//	os.WriteFile("paper.docx", result.DOCX, 0o644)
//
// A failing format does not stop the others: Convert returns every output
// it produced along with the joined per-format errors.
//
// # Manuscript Syntax
//
// On top of GitHub-flavoured Markdown, a manuscript may contain visual
// blocks delimited by ":::kind attributes" and ":::":
//
//	:::figure-panel layout=horizontal caption="Implants"
//	- img/a.png | Implant A
//	- img/b.png | Implant B
//	:::
//
// Supported kinds are image-gallery, annotated-image, comparison-slider,
// procedure-steps, figure-panel and surgical-photo-panel, plus the callout
// boxes key-points, warning, clinical-implications and evidence-grading.
// "**Field:** value" lines (or YAML front matter) set the title page, and
// links under a "References" heading build the bibliography.
//
// # Conversion Pipeline
//
//  1. Preprocessing (line endings, ==highlight==, blank lines)
//  2. Metadata, reference and figure/table extraction
//  3. Block rendering into fragments and section tree numbering
//  4. Assembly: title page, TOC, sections, lists, bibliography, index
//  5. Emission: HTML template, DOCX via go-docx, PDF via headless Chrome
//
// # Configuration
//
// Conversion settings come from a nested configuration tree. Load a YAML
// file with LoadConfig or start from DefaultConfig:
//
//	cfg, err := manuscript.LoadConfig("journal.yaml")
//	conv, err := manuscript.NewConverter(
//	    manuscript.WithConfig(cfg),
//	    manuscript.WithTimeout(2*time.Minute),
//	)
//
// # Parallel Processing
//
// For batch conversion, ConverterPool hands out converters, each owning
// its own browser:
//
//	pool := manuscript.NewConverterPool(manuscript.ResolvePoolSize(0), manuscript.WithConfig(cfg))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package manuscript
