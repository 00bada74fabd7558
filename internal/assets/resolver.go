package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded assets, so a directory can override a single file.
type AssetResolver struct {
	loaders []AssetLoader // most specific first
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only. An invalid customBasePath is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, custom)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle loads a CSS style from the first loader that has it.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate loads a page template from the first loader that has it.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// LoadScript loads a script from the first loader that has it.
func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadScript(name) })
}

// first moves on to the next loader only when an asset is missing. Invalid
// names and read failures stop the search.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		content, err = load(l)
		if err == nil || !isNotFound(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrScriptNotFound)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.loaders) > 1
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
