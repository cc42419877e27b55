package groups

import (
	"regexp"

	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// Skip reasons.
const (
	ReasonMissingName  = "missing name"
	ReasonMissingRegex = "missing regex"
	ReasonInvalidRegex = "invalid regex"
)

// Skipped records a group entry that was ignored.
type Skipped struct {
	Index  int
	Name   string
	Reason string
}

// Result is the outcome of Match.
type Result struct {
	// Names are the matching group names in document order.
	Names []string

	// Skipped lists malformed entries. Entries that simply do not match
	// the hostname are not recorded.
	Skipped []Skipped
}

// Match returns the groups whose regex matches hostname at its start. An
// empty hostname matches every well-formed entry. Entries without a name
// or regex, or with a regex that does not compile, are skipped.
func Match(cfg *settings.GroupSettings, hostname string) Result {
	var res Result

	if cfg == nil {
		return res
	}

	for i, entry := range cfg.Groups {
		g := entry.Group

		switch {
		case g.Name == "":
			res.Skipped = append(res.Skipped, Skipped{Index: i, Reason: ReasonMissingName})

			continue
		case g.Regex == "":
			res.Skipped = append(res.Skipped, Skipped{Index: i, Name: g.Name, Reason: ReasonMissingRegex})

			continue
		}

		re, err := compilePrefix(g.Regex)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{
				Index:  i,
				Name:   g.Name,
				Reason: ReasonInvalidRegex + ": " + err.Error(),
			})

			continue
		}

		if hostname != "" && !re.MatchString(hostname) {
			continue
		}

		res.Names = append(res.Names, g.Name)
	}

	return res
}

// compilePrefix compiles expr anchored at the start of the input only.
func compilePrefix(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + expr + `)`)
}
