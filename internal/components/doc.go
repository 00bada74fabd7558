// Package components renders the manuscript's visual blocks to HTML.
//
// Every renderer is a pure function of its input value: no I/O, no image
// existence or dimension checks. Rendering the same value twice yields
// byte-identical output, and element IDs come from the caller-supplied ID
// (never from memory addresses). All text and attribute values are
// HTML-escaped.
//
// Besides HTML, each component produces a plain-text Summary used by
// emitters that cannot embed the interactive markup (DOCX).
package components
