// Package file provides file-based implementations of driven port
// interfaces.
//
// Adapters:
//   - ConfigStore: TOML-based application settings
//   - Manifest: YAML-based source manifest, declaration order defines
//     priority
package file
