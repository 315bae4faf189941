// Package config provides the configuration for wikigraph.
//
// Values come from three layers. NewConfig fills in the defaults, an
// optional YAML file (.wikigraph) overrides them, and command-line flags
// that the user set explicitly override both. Validate is called once after
// all layers are applied, before any network activity.
//
// The configuration file is searched in the current directory, then in the
// XDG config directory, then in the home directory. See FindConfigFile.
package config
