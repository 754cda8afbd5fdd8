// Package config loads, normalizes and validates the TOML configuration of
// the labeling tool.
//
// Lookup order when no path is given: ./rolabel.toml, then
// ~/.config/rolabel/config.toml. A missing file yields Default(). Command
// line flags override loaded values only when they are set explicitly.
package config
