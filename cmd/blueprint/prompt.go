package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/davetashner/blueprint/internal/params"
)

// isTerminal reports whether stdin is interactive. Tests replace it.
var isTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptParams asks for the parameters, pre-filled with p. Tests replace it.
var promptParams = func(p params.Params) (params.Params, error) {
	if !isTerminal() {
		if err := p.Validate(); err != nil {
			return p, exitError(ExitConfig, "blueprint: stdin is not a terminal; pass every parameter with --unattended\n%v", err)
		}
		return p, nil
	}

	title := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Integration title").
			Description("Human-readable name shown in Home Assistant").
			Value(&p.Title).
			Validate(field(params.KeyTitle)),
		huh.NewInput().
			Title("GitHub repository").
			Description("owner/name").
			Value(&p.Repository).
			Validate(field(params.KeyRepository)),
	))
	if err := runForm(title); err != nil {
		return p, err
	}

	// Fill the remaining defaults from the answers.
	owner, repo, _ := strings.Cut(p.Repository, "/")
	p = params.Derive(p, owner, repo)

	rest := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Integration domain").
			Description("Lowercase identifier used in custom_components/").
			Value(&p.Domain).
			Validate(field(params.KeyDomain)),
		huh.NewInput().
			Title("Class namespace").
			Description("Prefix for Python class names").
			Value(&p.Namespace).
			Validate(field(params.KeyNamespace)),
		huh.NewInput().
			Title("Code owner").
			Description("GitHub user name, without @").
			Value(&p.Author).
			Validate(field(params.KeyAuthor)),
	))
	if err := runForm(rest); err != nil {
		return p, err
	}
	p.Author = strings.TrimPrefix(p.Author, "@")
	return p, nil
}

// confirmRun asks before modifying the tree. Tests replace it.
var confirmRun = func(root string, p params.Params) (bool, error) {
	if !isTerminal() {
		return false, exitError(ExitConfig, "blueprint: cannot ask for confirmation; pass --yes")
	}
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Customize %s as %q (%s)?", root, p.Title, p.Domain)).
			Description("This rewrites files in place and cannot be run twice.").
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := runForm(form); err != nil {
		return false, err
	}
	return ok, nil
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return exitError(ExitConfig, "blueprint: aborted")
		}
		return exitError(ExitFailure, "blueprint: prompt failed: %v", err)
	}
	return nil
}

func field(key string) func(string) error {
	return func(s string) error {
		return params.ValidateField(key, s)
	}
}
