// Package config handles the optional .blueprint.yaml file that describes the
// template being initialized.
package config

import (
	"path"
	"regexp"
)

// FileName is the expected config file name in a repository root.
const FileName = ".blueprint.yaml"

// Config represents the contents of a .blueprint.yaml file merged over
// Default().
type Config struct {
	Template Template `yaml:"template"`

	// CustomRoot is the directory holding integration packages.
	CustomRoot string `yaml:"custom_root,omitempty"`
	// ManifestFile is the manifest name inside the integration directory.
	ManifestFile string `yaml:"manifest_file,omitempty"`
	// Readme is replaced by ReadmeTemplate when the latter exists.
	Readme         string `yaml:"readme,omitempty"`
	ReadmeTemplate string `yaml:"readme_template,omitempty"`

	// Scaffolding files are deleted as the final step of a run and never
	// take part in substitution.
	Scaffolding []string `yaml:"scaffolding,omitempty"`

	// ExtraPrunes are additional ignore-file style lines pruned from the walk.
	ExtraPrunes []string `yaml:"extra_prunes,omitempty"`
}

// Template holds the placeholder tokens shipped in the pristine template.
type Template struct {
	Domain     string `yaml:"domain,omitempty"`
	Title      string `yaml:"title,omitempty"`
	Namespace  string `yaml:"namespace,omitempty"`
	Repository string `yaml:"repository,omitempty"`
	Author     string `yaml:"author,omitempty"`

	// RemotePattern matches remote URLs of repositories created from the
	// template.
	RemotePattern string `yaml:"remote_pattern,omitempty"`
}

// Default returns the configuration of the Home Assistant integration
// blueprint.
func Default() *Config {
	return &Config{
		Template: Template{
			Domain:        "ha_integration_domain",
			Title:         "Integration Blueprint",
			Namespace:     "IntegrationBlueprint",
			Repository:    "jpawlowski/hacs.integration_blueprint",
			Author:        "jpawlowski",
			RemotePattern: `(?i)integration[._-]?blueprint`,
		},
		CustomRoot:     "custom_components",
		ManifestFile:   "manifest.json",
		Readme:         "README.md",
		ReadmeTemplate: "README.template.md",
		Scaffolding:    []string{"initialize.sh", FileName},
	}
}

// TemplateDir returns the slash-separated placeholder integration directory.
func (c *Config) TemplateDir() string {
	return path.Join(c.CustomRoot, c.Template.Domain)
}

// ManifestPath returns the slash-separated manifest path inside TemplateDir.
func (c *Config) ManifestPath() string {
	return path.Join(c.TemplateDir(), c.ManifestFile)
}

// RemoteRegexp compiles Template.RemotePattern. Validate guarantees it
// compiles for loaded configs.
func (c *Config) RemoteRegexp() *regexp.Regexp {
	re, err := regexp.Compile(c.Template.RemotePattern)
	if err != nil {
		return regexp.MustCompile(regexp.QuoteMeta(c.Template.RemotePattern))
	}
	return re
}
