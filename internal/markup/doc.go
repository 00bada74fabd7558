// Package markup extracts the fenced ":::kind" blocks of a manuscript,
// renders them through the components package and substitutes each one
// with a private-use token on its own line.
//
// The text that comes out of Process is ordinary markdown plus tokens.
// After markdown conversion, Registry.Expand swaps every token for its
// fragment HTML, so the markdown converter never handles raw HTML.
//
// Processing order for one document:
//
//  1. inventory: blocks are numbered and given ids in document order,
//     inline captioned figures and tables are rendered.
//  2. visual passes: gallery, figure-panel, annotated-image, comparison,
//     procedure-steps, surgical-photos.
//  3. callout passes: key-points, warning, clinical-implications,
//     evidence-grading. Callout bodies stay markdown between an opening
//     and a closing token and may contain visual blocks.
//
// Only depth-zero blocks render. A block nested inside a visual block is
// part of its parent's body and its lines are ignored by the parent parser.
package markup
