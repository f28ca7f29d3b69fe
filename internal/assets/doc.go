// Package assets provides the CSS styles and HTML page template used to
// render conversation transcripts.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and templates (go:embed)
//	    ├── FilesystemLoader  - assets from a directory on disk
//	    └── AssetResolver     - custom-first lookup with embedded fallback
//
// AssetResolver lets users override a single file, for example only
// styles/default.css, while every other asset keeps its built-in version.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css         # page styles (default, dark)
//	└── templates/
//	    └── {name}.html        # page templates (transcript)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
