package config

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	tokens := []struct{ key, value string }{
		{"template.domain", cfg.Template.Domain},
		{"template.title", cfg.Template.Title},
		{"template.namespace", cfg.Template.Namespace},
		{"template.repository", cfg.Template.Repository},
		{"template.author", cfg.Template.Author},
	}
	for _, t := range tokens {
		if strings.TrimSpace(t.value) == "" {
			errs = append(errs, fmt.Sprintf("%s: must not be empty", t.key))
		}
	}

	if cfg.Template.Repository != "" && strings.Count(cfg.Template.Repository, "/") != 1 {
		errs = append(errs, fmt.Sprintf("template.repository: want owner/name, got %q", cfg.Template.Repository))
	}

	if cfg.Template.RemotePattern == "" {
		errs = append(errs, "template.remote_pattern: must not be empty")
	} else if _, err := regexp.Compile(cfg.Template.RemotePattern); err != nil {
		errs = append(errs, fmt.Sprintf("template.remote_pattern: %v", err))
	}

	paths := map[string]string{
		"custom_root":     cfg.CustomRoot,
		"manifest_file":   cfg.ManifestFile,
		"readme":          cfg.Readme,
		"readme_template": cfg.ReadmeTemplate,
	}
	for _, key := range []string{"custom_root", "manifest_file", "readme", "readme_template"} {
		if msg := checkRelative(paths[key]); msg != "" {
			errs = append(errs, fmt.Sprintf("%s: %s", key, msg))
		}
	}
	for i, s := range cfg.Scaffolding {
		if msg := checkRelative(s); msg != "" {
			errs = append(errs, fmt.Sprintf("scaffolding[%d]: %s", i, msg))
		}
	}
	for i, p := range cfg.ExtraPrunes {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("extra_prunes[%d]: must not be empty", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// checkRelative returns a problem description when p is not a non-empty path
// that stays inside the repository.
func checkRelative(p string) string {
	switch {
	case strings.TrimSpace(p) == "":
		return "must not be empty"
	case path.IsAbs(p) || strings.HasPrefix(p, "\\"):
		return fmt.Sprintf("must be relative, got %q", p)
	case path.Clean(p) == ".." || strings.HasPrefix(path.Clean(p), "../"):
		return fmt.Sprintf("must stay inside the repository, got %q", p)
	}
	return ""
}
