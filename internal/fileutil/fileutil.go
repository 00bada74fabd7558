// Package fileutil provides file and path helpers shared by the library and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrEmptyFilename          = errors.New("filename is empty after sanitization")
)

// tempPrefix names every temporary file this module creates.
const tempPrefix = "manuscript-"

var (
	unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
	dashRun             = regexp.MustCompile(`-+`)
)

// SanitizeFilename turns a title or file stem into a safe, lower-case file
// name: reserved characters are dropped, whitespace becomes "-" and dash
// runs collapse. Letters outside ASCII are kept.
//
// Examples:
//   - "Knee Study: Results" -> "knee-study-results"
//   - "a/b\\c"              -> "abc"
//   - "  Обзор  литературы" -> "обзор-литературы"
func SanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "-")
	name = dashRun.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	return strings.ToLower(name)
}

// OutputPath returns dir/<sanitized stem of input>.<ext>. An input whose
// stem sanitizes to nothing keeps "manuscript" as its name.
func OutputPath(dir, input, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := SanitizeFilename(stem)
	if name == "" {
		name = "manuscript"
	}
	return filepath.Join(dir, name+"."+ext)
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath, err := spill(filepath.Dir(path), "."+tempPrefix+"*", data)
	if err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteTempFile stores content in a new file under the system temp
// directory and returns its path with a function that removes it.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}
	path, err = spill("", tempPrefix+"*."+extension, []byte(content))
	if err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// spill creates a file matching pattern in dir and fills it with data.
// The file is removed again on any failure.
func spill(dir, pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()

	_, werr := f.Write(data)
	cerr := f.Close()
	switch {
	case werr != nil:
		_ = os.Remove(name)
		return "", fmt.Errorf("writing temp file: %w", werr)
	case cerr != nil:
		_ = os.Remove(name)
		return "", fmt.Errorf("closing temp file: %w", cerr)
	}
	return name, nil
}

// ValidateExtension rejects extensions that could move a temp file out of
// its directory.
func ValidateExtension(extension string) error {
	switch {
	case extension == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(extension, "/\\\x00"):
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s is a path rather than a bare config name,
// which is the case as soon as it holds a separator.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsMarkdown reports whether path has a .md or .markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
