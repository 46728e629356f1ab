package intent

import (
	"fmt"
	"sync"
)

// Risk tiers a capability. Only RiskDestructive requires confirmation.
type Risk string

const (
	RiskSafe        Risk = "safe"
	RiskElevated    Risk = "elevated"
	RiskDestructive Risk = "destructive"
)

// Rule binds alias phrases to an executor action and mode.
//
// A rule carries an Action, an Unsupported reason, or neither. Rules with an
// Unsupported reason always resolve as matched-but-unsupported.
type Rule struct {
	ID          string
	Action      string
	Mode        string
	Risk        Risk
	Aliases     []string
	Unsupported string
	Params      []string
}

func (r Rule) wants(param string) bool {
	for _, p := range r.Params {
		if p == param {
			return true
		}
	}
	return false
}

type compiledRule struct {
	rule    Rule
	aliases []string // normalized
}

var (
	compileOnce sync.Once
	compiled    []compiledRule
)

func compiledTable() []compiledRule {
	compileOnce.Do(func() {
		compiled = make([]compiledRule, 0, len(table))
		for _, r := range table {
			c := compiledRule{rule: r}
			for _, a := range r.Aliases {
				if n := Normalize(a); n != "" {
					c.aliases = append(c.aliases, n)
				}
			}
			compiled = append(compiled, c)
		}
	})
	return compiled
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}

// Validate checks the table invariants: unique IDs, known risk tiers and no
// rule that is both executable and unsupported.
func Validate(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			return fmt.Errorf("rule %d: empty id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("rule %q: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}
		switch r.Risk {
		case RiskSafe, RiskElevated, RiskDestructive:
		default:
			return fmt.Errorf("rule %q: unknown risk %q", r.ID, r.Risk)
		}
		if r.Action != "" && r.Unsupported != "" {
			return fmt.Errorf("rule %q: has both action and unsupported reason", r.ID)
		}
		if len(r.Aliases) == 0 {
			return fmt.Errorf("rule %q: no aliases", r.ID)
		}
	}
	return nil
}
