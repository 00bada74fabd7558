package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	manuscript "github.com/alnah/go-manuscript"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and pool
// ---------------------------------------------------------------------------

// mockConverter returns canned outputs for every requested format.
// failures marks formats that fail with the given error.
type mockConverter struct {
	mu       sync.Mutex
	inputs   []manuscript.Input
	failures map[manuscript.Format]error
	err      error // returned with a nil result
}

func (m *mockConverter) Convert(_ context.Context, input manuscript.Input) (*manuscript.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	formats := input.Formats
	if len(formats) == 0 {
		formats = manuscript.AllFormats
	}
	res := &manuscript.ConvertResult{Title: "T", Formats: formats}
	for _, f := range formats {
		if err, ok := m.failures[f]; ok {
			if res.Errors == nil {
				res.Errors = map[manuscript.Format]error{}
			}
			res.Errors[f] = err
			continue
		}
		switch f {
		case manuscript.FormatHTML:
			res.HTML = []byte("<html></html>")
		case manuscript.FormatDOCX:
			res.DOCX = []byte("PK")
		case manuscript.FormatPDF:
			res.PDF, res.PDFPages = []byte("%PDF-1.4"), 1
		}
	}
	return res, res.Err()
}

func (m *mockConverter) calls() []manuscript.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]manuscript.Input(nil), m.inputs...)
}

// mockPool hands the same converter to every worker.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	released int
	closed   bool
	opts     int
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// testEnv returns an environment whose pool wraps conv, plus its buffers.
func testEnv(conv CLIConverter) (*Environment, *mockPool, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	pool := &mockPool{conv: conv}
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		NewPool: func(size int, opts ...manuscript.Option) Pool {
			pool.size = size
			pool.opts = len(opts)
			return pool
		},
	}
	return env, pool, &stdout, &stderr
}

// writeFile creates path under dir with content and returns the full path.
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()

	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return full
}

func assertExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

const validManuscript = `# Outcomes of Knee Arthroplasty

**Author:** A. Surgeon
**Date:** 2024-05-01
**Keywords:** knee

## Abstract

Summary [1].

## Methods

## Results

## References

1. [Smith J. Knee](https://doi.org/10.1/a)
`
