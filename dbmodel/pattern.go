package dbmodel

import (
	"regexp"
)

// Pattern selects column names either by exact match or by regular
// expression. Build one with Exact or Regex.
type Pattern struct {
	exact string
	re    *regexp.Regexp
}

// Exact matches the column with exactly this name.
func Exact(name string) Pattern {
	return Pattern{exact: name}
}

// Regex matches every column name the expression matches.
func Regex(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

func (p Pattern) matches(name string) bool {
	if p.re != nil {
		return p.re.MatchString(name)
	}

	return p.exact == name
}

func matchesAny(name string, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.matches(name) {
			return true
		}
	}

	return false
}
