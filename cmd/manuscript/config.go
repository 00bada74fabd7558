package main

import (
	"fmt"

	manuscript "github.com/alnah/go-manuscript"
)

// loadConfig loads the named config (or the defaults) and applies the CLI
// overrides on top. CLI flags win over the file.
func loadConfig(common commonFlags, toc tocFlags) (*manuscript.Config, error) {
	cfg := manuscript.DefaultConfig()
	if common.config != "" {
		var err error
		cfg, err = manuscript.LoadConfig(common.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	override, err := flagOverrides(toc)
	if err != nil {
		return nil, err
	}
	if len(override) == 0 {
		return cfg, nil
	}
	cfg, err = cfg.WithOverrides(override)
	if err != nil {
		return nil, fmt.Errorf("applying flags: %w", err)
	}
	return cfg, nil
}

// flagOverrides converts flags into a config tree keyed by dot paths.
func flagOverrides(toc tocFlags) (manuscript.ConfigTree, error) {
	override := manuscript.ConfigTree{}
	if toc.disabled {
		if err := override.Set("toc.enabled", false); err != nil {
			return nil, err
		}
	}
	if toc.depthSet {
		if err := override.Set("toc.depth", toc.depth); err != nil {
			return nil, err
		}
	}
	return override, nil
}

// resolveOutputDir returns the flag value, falling back to output.output_dir.
func resolveOutputDir(flagOutput string, cfg *manuscript.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.OutputDir != "" {
		return cfg.Output.OutputDir
	}
	return "."
}

// converterOptions builds the options shared by every pooled converter.
func converterOptions(cfg *manuscript.Config, out outputFlags) []manuscript.Option {
	opts := []manuscript.Option{manuscript.WithConfig(cfg)}
	if out.timeout > 0 {
		opts = append(opts, manuscript.WithTimeout(out.timeout))
	}
	if out.assetPath != "" {
		opts = append(opts, manuscript.WithAssetPath(out.assetPath))
	}
	return opts
}
