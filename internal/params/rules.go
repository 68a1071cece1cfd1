package params

import (
	"github.com/davetashner/blueprint/internal/config"
	"github.com/davetashner/blueprint/internal/substitute"
)

// Rules returns the substitution rules in their fixed order. The repository
// token goes first because it contains the author's name.
func Rules(tmpl config.Template, p Params) []substitute.Rule {
	return []substitute.Rule{
		{Label: KeyRepository, Search: tmpl.Repository, Replace: p.Repository},
		{Label: KeyDomain, Search: tmpl.Domain, Replace: p.Domain},
		{Label: KeyNamespace, Search: tmpl.Namespace, Replace: p.Namespace},
		{Label: KeyTitle, Search: tmpl.Title, Replace: p.Title},
		{Label: KeyAuthor, Search: "@" + tmpl.Author, Replace: "@" + p.Author},
	}
}
