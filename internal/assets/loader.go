package assets

import "strings"

// AssetLoader defines the contract for loading stylesheets, page templates
// and scripts. Names never carry an extension or path components.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadScript loads a script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)
}

// Built-in asset names.
const (
	ManuscriptStyle    = "manuscript"
	ComponentsStyle    = "components"
	ManuscriptTemplate = "manuscript"
	InteractionsScript = "interactions"
)

// Bundle is everything one HTML page embeds.
type Bundle struct {
	CSS      string
	Script   string
	Template string
}

// LoadBundle loads the manuscript and component styles, the page template
// and the interaction script. extraCSS is appended last so it overrides
// the built-in rules.
func LoadBundle(loader AssetLoader, extraCSS string) (*Bundle, error) {
	var css []string
	for _, name := range []string{ManuscriptStyle, ComponentsStyle} {
		s, err := loader.LoadStyle(name)
		if err != nil {
			return nil, err
		}
		css = append(css, s)
	}
	if strings.TrimSpace(extraCSS) != "" {
		css = append(css, extraCSS)
	}

	tmpl, err := loader.LoadTemplate(ManuscriptTemplate)
	if err != nil {
		return nil, err
	}
	script, err := loader.LoadScript(InteractionsScript)
	if err != nil {
		return nil, err
	}
	return &Bundle{CSS: strings.Join(css, "\n"), Script: script, Template: tmpl}, nil
}
