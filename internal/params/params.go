// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package params resolves and validates the customization parameters that
// replace the template placeholders.
package params

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix: BLUEPRINT_DOMAIN etc.
const EnvPrefix = "BLUEPRINT"

// Keys are the parameter names shared by flags, environment and prompts.
const (
	KeyDomain     = "domain"
	KeyTitle      = "title"
	KeyNamespace  = "namespace"
	KeyRepository = "repository"
	KeyAuthor     = "author"
)

// Params are the values substituted for the template placeholders.
type Params struct {
	Domain     string `mapstructure:"domain" validate:"required,hadomain"`
	Title      string `mapstructure:"title" validate:"required,max=100"`
	Namespace  string `mapstructure:"namespace" validate:"required,classname"`
	Repository string `mapstructure:"repository" validate:"required,ghrepo"`
	Author     string `mapstructure:"author" validate:"required,ghuser"`
}

var (
	domainPattern    = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	classNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	userPattern      = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
	repoNamePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

// validate is the validator instance for Params.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})
	_ = validate.RegisterValidation("hadomain", matchField(domainPattern))
	_ = validate.RegisterValidation("classname", matchField(classNamePattern))
	_ = validate.RegisterValidation("ghuser", matchField(userPattern))
	_ = validate.RegisterValidation("ghrepo", validateRepository)
}

func matchField(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// validateRepository accepts owner/name GitHub repository identifiers.
func validateRepository(fl validator.FieldLevel) bool {
	owner, name, ok := strings.Cut(fl.Field().String(), "/")
	if !ok {
		return false
	}
	return userPattern.MatchString(owner) && repoNamePattern.MatchString(name) && name != "." && name != ".."
}

// ConfigError reports invalid or missing parameters. It is fatal and raised
// before anything on disk changes.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid parameters:\n  " + strings.Join(e.Problems, "\n  ")
}

// Validate checks every field and returns a *ConfigError listing all
// problems.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ConfigError{Problems: []string{err.Error()}}
	}
	ce := &ConfigError{}
	for _, fe := range verrs {
		ce.Problems = append(ce.Problems, describe(fe))
	}
	return ce
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", fe.Field())
	case "hadomain":
		return fmt.Sprintf("%s: %q must start with a lowercase letter and contain only lowercase letters, digits and underscores", fe.Field(), fe.Value())
	case "classname":
		return fmt.Sprintf("%s: %q must be a CamelCase identifier", fe.Field(), fe.Value())
	case "ghrepo":
		return fmt.Sprintf("%s: %q must be owner/name", fe.Field(), fe.Value())
	case "ghuser":
		return fmt.Sprintf("%s: %q is not a valid GitHub user name", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
}

// CheckMode rejects unattended runs that would modify the tree without
// having been confirmed up front. Dry runs are always allowed.
func CheckMode(unattended, confirmed, dryRun bool) error {
	if unattended && !confirmed && !dryRun {
		return &ConfigError{Problems: []string{"unattended mode requires --yes or --force (or --dry-run)"}}
	}
	return nil
}

// Bind returns a viper instance reading the parameter flags in flags, with
// BLUEPRINT_* environment variables as fallback.
func Bind(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{KeyDomain, KeyTitle, KeyNamespace, KeyRepository, KeyAuthor} {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return v, nil
}

// FromViper reads Params from v, trimming whitespace and a leading "@" on
// the author.
func FromViper(v *viper.Viper) Params {
	return Params{
		Domain:     strings.TrimSpace(v.GetString(KeyDomain)),
		Title:      strings.TrimSpace(v.GetString(KeyTitle)),
		Namespace:  strings.TrimSpace(v.GetString(KeyNamespace)),
		Repository: strings.TrimSpace(v.GetString(KeyRepository)),
		Author:     strings.TrimPrefix(strings.TrimSpace(v.GetString(KeyAuthor)), "@"),
	}
}

// ValidateField checks a single value for key, as used by interactive
// prompts. It returns nil when the value is acceptable.
func ValidateField(key, value string) error {
	var p Params
	switch key {
	case KeyDomain:
		p.Domain = value
	case KeyTitle:
		p.Title = value
	case KeyNamespace:
		p.Namespace = value
	case KeyRepository:
		p.Repository = value
	case KeyAuthor:
		p.Author = strings.TrimPrefix(value, "@")
	default:
		return fmt.Errorf("unknown parameter %q", key)
	}
	var ce *ConfigError
	if err := p.Validate(); errors.As(err, &ce) {
		for _, problem := range ce.Problems {
			if msg, ok := strings.CutPrefix(problem, key+": "); ok {
				return errors.New(msg)
			}
		}
	}
	return nil
}
