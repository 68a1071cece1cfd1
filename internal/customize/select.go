package customize

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/davetashner/blueprint/internal/config"
	"github.com/davetashner/blueprint/internal/ignore"
	"github.com/davetashner/blueprint/internal/selector"
)

// Select lists the substitution candidates of root: the ignore file's
// prunes, the configured extra prunes and the operational prunes are
// skipped, negations are re-included, and scaffolding files are excluded.
func Select(root string, cfg *config.Config, exclude []string) ([]*selector.Candidate, error) {
	rules, err := ignore.Load(FS, filepath.Join(root, ignore.FileName))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ignore.FileName, err)
	}
	extra := ignore.Parse([]byte(strings.Join(cfg.ExtraPrunes, "\n")))

	prunes := append([]ignore.PrunePath{}, selector.OperationalPrunes...)
	prunes = append(prunes, rules.Prunes...)
	prunes = append(prunes, extra.Prunes...)

	names := append([]string{}, exclude...)
	for _, s := range cfg.Scaffolding {
		names = append(names, path.Base(s))
	}

	return selector.Select(root, selector.Options{
		Prunes:    prunes,
		Negations: append(rules.Negations, extra.Negations...),
		Exclude:   names,
	})
}
