// Package assets provides the stylesheets, page template and interaction
// script embedded in every HTML manuscript.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset
// is not found, so a directory can override a single file.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── manuscript.css     # page layout, title page, TOC, bibliography
//	│   └── components.css     # galleries, panels, sliders, callout boxes
//	├── templates/
//	│   └── manuscript.html    # html/template page skeleton
//	└── scripts/
//	    └── interactions.js    # lightbox and comparison slider behaviour
//
// # Security
//
// Asset names cannot contain separators or dots. FilesystemLoader reads
// through an os.Root, which refuses any path or link leaving basePath.
package assets
