// Package pipeline assembles a manuscript and emits it as HTML.
//
// The stages, in order:
//   - Markdown preprocessing (BOM, line endings, ==highlight==, blank lines)
//   - Metadata, references and inventory extraction (package metadata)
//   - Block rendering into fragment tokens (package markup)
//   - Section tree building and numbering (package sections)
//   - Assembly into a Document: title, TOC, sections, lists, bibliography, index
//   - HTML emission: goldmark conversion, fragment expansion, page template,
//     CSS and script injection
//
// PDF and DOCX emitters consume the same Document. PDF printing lives in
// the root package (headless Chrome via go-rod); ResolveAssetPaths prepares
// the page for it by turning relative image paths into file:// URLs.
package pipeline
