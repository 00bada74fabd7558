package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	manuscript "github.com/alnah/go-manuscript"
)

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and flag overrides
// ---------------------------------------------------------------------------

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(commonFlags{}, tocFlags{})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if !cfg.TOC.Enabled || cfg.TOC.Depth != 3 {
		t.Errorf("TOC = %+v, want defaults", cfg.TOC)
	}
}

func TestLoadConfig_FileAndFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "journal.yaml", "toc:\n  depth: 2\n  title: Contents\noutput:\n  output_dir: build\n")

	tests := []struct {
		name        string
		toc         tocFlags
		wantEnabled bool
		wantDepth   int
	}{
		{name: "file only", wantEnabled: true, wantDepth: 2},
		{name: "no-toc", toc: tocFlags{disabled: true}, wantEnabled: false, wantDepth: 2},
		{name: "toc-depth", toc: tocFlags{depth: 5, depthSet: true}, wantEnabled: true, wantDepth: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := loadConfig(commonFlags{config: path}, tt.toc)
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg.TOC.Enabled != tt.wantEnabled || cfg.TOC.Depth != tt.wantDepth {
				t.Errorf("TOC = %+v", cfg.TOC)
			}
			if cfg.TOC.Title != "Contents" {
				t.Errorf("TOC.Title = %q, want file value kept", cfg.TOC.Title)
			}
			if got := resolveOutputDir("", cfg); got != "build" {
				t.Errorf("resolveOutputDir() = %q, want build", got)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.yaml", "toc: [unclosed\n")

	tests := []struct {
		name    string
		common  commonFlags
		toc     tocFlags
		wantErr error
	}{
		{
			name:    "missing file",
			common:  commonFlags{config: filepath.Join(dir, "nope.yaml")},
			wantErr: manuscript.ErrConfigNotFound,
		},
		{
			name:    "unparsable file",
			common:  commonFlags{config: broken},
			wantErr: manuscript.ErrConfigParse,
		},
		{
			name:    "depth out of range",
			toc:     tocFlags{depth: 9, depthSet: true},
			wantErr: manuscript.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := loadConfig(tt.common, tt.toc); !errors.Is(err, tt.wantErr) {
				t.Errorf("loadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	cfg := manuscript.DefaultConfig()
	if got := resolveOutputDir("dist", cfg); got != "dist" {
		t.Errorf("flag value = %q, want dist", got)
	}
	if got := resolveOutputDir("", cfg); got != cfg.Output.OutputDir {
		t.Errorf("config value = %q, want %q", got, cfg.Output.OutputDir)
	}

	cfg.Output.OutputDir = ""
	if got := resolveOutputDir("", cfg); got != "." {
		t.Errorf("fallback = %q, want .", got)
	}
}

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	cfg := manuscript.DefaultConfig()
	tests := []struct {
		name string
		out  outputFlags
		want int
	}{
		{name: "config only", want: 1},
		{name: "timeout", out: outputFlags{timeout: time.Minute}, want: 2},
		{name: "all", out: outputFlags{timeout: time.Minute, assetPath: "assets"}, want: 3},
	}
	for _, tt := range tests {
		if got := len(converterOptions(cfg, tt.out)); got != tt.want {
			t.Errorf("%s: %d options, want %d", tt.name, got, tt.want)
		}
	}
}
