// Package refs decides whether a job should run for a given branch or
// tag ref, based on its only/except filter lists.
package refs

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternError reports a filter pattern whose regular expression could
// not be compiled. It surfaces at match time, not when the document is
// constructed.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("refs: invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Match reports whether a single filter pattern matches ref. A pattern
// wrapped in slashes, like "/^v.*/", is a regular expression matched
// anywhere within ref. Any other pattern must equal ref exactly.
func Match(pattern, ref string) (bool, error) {
	if len(pattern) >= 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		re, err := regexp.Compile(pattern[1 : len(pattern)-1])
		if err != nil {
			return false, &PatternError{Pattern: pattern, Err: err}
		}
		return re.MatchString(ref), nil
	}
	return pattern == ref, nil
}
