package media

import (
	"fmt"
	"regexp"
)

// Rule is one named step of an ordered pattern fallback chain.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Match is the structured result of a rule that matched.
//
// Start and End delimit the whole match within the input. Groups holds the
// capture groups in order; an unmatched optional group is an empty string.
type Match struct {
	Rule   Rule
	Start  int
	End    int
	Text   string
	Groups []string
}

// Match evaluates the rule against s.
func (r Rule) Match(s string) (Match, bool) {
	loc := r.Pattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}

	groups := make([]string, 0, len(loc)/2-1)
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, s[loc[i]:loc[i+1]])
	}

	return Match{
		Rule:   r,
		Start:  loc[0],
		End:    loc[1],
		Text:   s[loc[0]:loc[1]],
		Groups: groups,
	}, true
}

// FirstMatch evaluates rules in order and returns the first one that matches.
func FirstMatch(rules []Rule, s string) (Match, bool) {
	for _, rule := range rules {
		if m, ok := rule.Match(s); ok {
			return m, true
		}
	}
	return Match{}, false
}

// ParseError reports a filename that no rule of a required step could match.
type ParseError struct {
	Name string // filename being parsed
	Step string // extraction step that failed, e.g. "resolution"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: no %s marker found", e.Name, e.Step)
}
