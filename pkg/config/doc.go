// Package config loads the tool configuration for cuepine.
//
// Sources are layered, each one overriding the previous:
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/cuepine/config.toml, or an explicit path
//  3. CUEPINE_SECTION_KEY environment variables, e.g. CUEPINE_HOOKS_STRICT_PRE=true
//  4. overrides from command line flags
//
// The manifest format itself is not configuration; see package manifest.
package config
