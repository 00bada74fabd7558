package manuscript

import (
	"fmt"

	"github.com/alnah/go-manuscript/internal/assets"
)

// Built-in asset names.
const (
	ManuscriptStyle    = assets.ManuscriptStyle
	ComponentsStyle    = assets.ComponentsStyle
	ManuscriptTemplate = assets.ManuscriptTemplate
	InteractionsScript = assets.InteractionsScript
)

// Asset lookup errors.
var (
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrScriptNotFound   = assets.ErrScriptNotFound
)

// AssetLoader loads the stylesheets, page template and script embedded in
// every HTML page. Implementations may load from the filesystem, embedded
// files, a database, etc. Names never carry an extension.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name.
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML page template by name.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadScript loads a script by name.
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - styles/{name}.css
//   - templates/{name}.html
//   - scripts/{name}.js
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

var _ assets.AssetLoader = AssetLoader(nil)
