package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed styles/*.css templates/*.html scripts/*.js
var files embed.FS

// assetKind locates one type of asset on disk or in the embedded tree.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	kindStyle    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	kindTemplate = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	kindScript   = assetKind{dir: "scripts", ext: ".js", notFound: ErrScriptNotFound}
)

func (k assetKind) path(name string) string {
	return path.Join(k.dir, name+k.ext)
}

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Separators and dots are rejected, so a name can neither leave its directory
// nor change its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// source loads assets through read, which takes a slash-separated path
// relative to the asset root and reports absence with fs.ErrNotExist.
type source struct {
	read func(rel string) ([]byte, error)
}

// LoadStyle loads styles/{name}.css.
func (s source) LoadStyle(name string) (string, error) { return s.load(kindStyle, name) }

// LoadTemplate loads templates/{name}.html.
func (s source) LoadTemplate(name string) (string, error) { return s.load(kindTemplate, name) }

// LoadScript loads scripts/{name}.js.
func (s source) LoadScript(name string) (string, error) { return s.load(kindScript, name) }

func (s source) load(k assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := s.read(k.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EmbeddedLoader loads the assets compiled into the binary.
type EmbeddedLoader struct {
	source
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{source{read: files.ReadFile}}
}

// FilesystemLoader loads assets from a directory laid out like the
// embedded tree. Reads go through an os.Root, so no symlink or name can
// reach a file outside the directory.
type FilesystemLoader struct {
	source
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer root.Close()
	if _, err := fs.ReadDir(root.FS(), "."); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	f := &FilesystemLoader{basePath: abs}
	f.read = f.readFile
	return f, nil
}

// BasePath returns the absolute asset directory.
func (f *FilesystemLoader) BasePath() string { return f.basePath }

func (f *FilesystemLoader) readFile(rel string) ([]byte, error) {
	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	name := filepath.FromSlash(rel)
	data, err := root.ReadFile(name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return data, err
	}
	// The root refuses links that resolve outside it.
	if info, lerr := root.Lstat(name); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
		return nil, fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	}
	return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*EmbeddedLoader)(nil)
	_ AssetLoader = (*FilesystemLoader)(nil)
)
