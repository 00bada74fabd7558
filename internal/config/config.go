package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-manuscript/internal/fileutil"
	"github.com/alnah/go-manuscript/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// configDirName is the directory searched under os.UserConfigDir().
const configDirName = "go-manuscript"

// Config is the typed view of a configuration tree.
// Every key of the tree maps to exactly one field; unknown keys are rejected.
type Config struct {
	Document     DocumentConfig     `yaml:"document"`
	Formatting   FormattingConfig   `yaml:"formatting"`
	Styles       StylesConfig       `yaml:"styles"`
	Numbering    NumberingConfig    `yaml:"numbering"`
	TOC          TOCConfig          `yaml:"toc"`
	Bibliography BibliographyConfig `yaml:"bibliography"`
	Index        IndexConfig        `yaml:"index"`
	Output       OutputConfig       `yaml:"output"`

	tree Tree
}

// DocumentConfig holds title-page and metadata defaults.
type DocumentConfig struct {
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Date      string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
	Language  string `yaml:"language"`
	PaperSize string `yaml:"paper_size"`
}

// FormattingConfig holds global typography.
type FormattingConfig struct {
	FontFamily  string        `yaml:"font_family"`
	FontSize    float64       `yaml:"font_size"` // points
	LineSpacing float64       `yaml:"line_spacing"`
	Margins     MarginsConfig `yaml:"margins"`
}

// MarginsConfig holds page margins in centimetres.
type MarginsConfig struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// StylesConfig holds per-element styles.
type StylesConfig struct {
	Heading1 HeadingStyle `yaml:"heading1"`
	Heading2 HeadingStyle `yaml:"heading2"`
	Heading3 HeadingStyle `yaml:"heading3"`
	Body     BodyStyle    `yaml:"body"`
}

// HeadingStyle configures one heading level.
type HeadingStyle struct {
	FontSize int    `yaml:"font_size"`
	Bold     bool   `yaml:"bold"`
	Color    string `yaml:"color"` // RRGGBB without '#'
}

// BodyStyle configures body paragraphs.
type BodyStyle struct {
	FontSize  int    `yaml:"font_size"`
	Alignment string `yaml:"alignment"`
}

// NumberingConfig enables auto-numbering per entity kind.
type NumberingConfig struct {
	Sections bool   `yaml:"sections"`
	Figures  bool   `yaml:"figures"`
	Tables   bool   `yaml:"tables"`
	Format   string `yaml:"format"` // decimal, roman, letter
}

// TOCConfig configures the table of contents.
type TOCConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Depth          int    `yaml:"depth"`
	PageBreakAfter bool   `yaml:"page_break_after"`
	Title          string `yaml:"title"`
}

// BibliographyConfig configures the reference list.
type BibliographyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // numbered, apa, mla
	Title   string `yaml:"title"`
}

// IndexConfig configures the keyword index.
type IndexConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
}

// OutputConfig selects emitters and the output location.
type OutputConfig struct {
	Formats   []string `yaml:"formats"`
	OutputDir string   `yaml:"output_dir"`
}

// DefaultConfig returns the typed view of Defaults().
// Panics only if the built-in defaults are inconsistent with Config.
func DefaultConfig() *Config {
	cfg, err := Decode(Defaults())
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults are invalid: %v", err))
	}
	return cfg
}

// Decode converts a tree into a validated Config. Unknown layout and style
// choices resolve to their defaults instead of failing.
// The tree is kept as-is for dot-path lookups; callers should pass a tree
// that already carries defaults (see New).
func Decode(t Tree) (*Config, error) {
	var cfg Config
	if err := yamlutil.Remarshal(map[string]any(t), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolveChoices()
	cfg.tree = t
	return &cfg, nil
}

// New merges override onto the defaults and decodes the result.
func New(override Tree) (*Config, error) {
	return Decode(Merge(Defaults(), override))
}

// WithOverrides returns a new Config with override merged on top of c.
// c is not modified.
func (c *Config) WithOverrides(override Tree) (*Config, error) {
	return Decode(Merge(c.Tree(), override))
}

// Tree returns a copy of the configuration tree.
func (c *Config) Tree() Tree {
	if c.tree == nil {
		return Defaults()
	}
	return Merge(c.tree, nil)
}

// Get looks up a dot-separated key path such as "toc.depth".
func (c *Config) Get(path string) (any, bool) {
	if c.tree == nil {
		return Defaults().Get(path)
	}
	return c.tree.Get(path)
}

// LoadConfig reads a YAML override from nameOrPath and merges it onto the
// defaults. A value containing a path separator is opened as is. Anything
// else is a config name looked up in SearchPaths order. A missing file is an
// error; there is no fallback to the defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	candidates := []string{nameOrPath}
	if !fileutil.IsFilePath(nameOrPath) {
		candidates = SearchPaths(nameOrPath)
	}

	var data []byte
	for _, candidate := range candidates {
		b, err := os.ReadFile(candidate) // #nosec G304 -- config path is user-provided
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", candidate, err)
		}
		data = b
		break
	}
	if data == nil {
		return nil, &NotFoundError{Name: nameOrPath, Tried: candidates}
	}

	override, err := yamlutil.UnmarshalMap(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return New(Tree(override))
}

// SearchPaths lists where a config name is looked up: NAME.yaml and NAME.yml
// in the working directory, then the same two under the user config
// directory.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	dirs := []string{""}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, configDirName))
	}

	paths := make([]string, 0, len(dirs)*len(exts))
	for _, dir := range dirs {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// NotFoundError reports a config that exists in none of the searched
// locations. It matches ErrConfigNotFound.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Is makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Is(target error) bool { return target == ErrConfigNotFound }
