// Package config loads collabboard settings.
//
// Settings are layered, lowest precedence first:
//
//   - built-in defaults (Default)
//   - a TOML or YAML file, chosen by extension
//   - COLLABBOARD_* environment variables
//   - command-line flags, applied by the caller
//
// Watch reloads the file when it changes on disk so the application can
// apply the hot-reloadable fields without a restart.
package config
