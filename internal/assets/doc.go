// Package assets provides theme presets and photo assets for CV rendering.
//
// # Loader Architecture
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in presets (classic, modern, compact)
//	    ├── FilesystemLoader  - presets from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// PhotoResolver turns a stored photo id into a base64 data URI so the
// rendered page never touches the network or the filesystem.
//
// # Directory Structure
//
//	{basePath}/
//	└── themes/
//	    └── {name}.yaml          # theme preset
//
//	{photoRoot}/
//	└── {id}.{jpg,jpeg,png,webp} # photo assets
//
// # Security
//
// Asset names and photo ids are validated to prevent path traversal.
// Filesystem lookups resolve symlinks and verify paths stay within their root.
package assets
