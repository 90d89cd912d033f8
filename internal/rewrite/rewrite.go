// Package rewrite provides the generic regex-substitution primitive used by
// the HTML fixers. A fixer serializes a subtree to markup, rewrites it here,
// and re-parses the result; tree-level side effects implied by a match are
// carried out of band as Events.
package rewrite

import "regexp"

// Event is a structured side-channel value emitted by a Handler for a match
// whose effect cannot be expressed in the substituted text alone (renaming or
// reclassifying the containing element, for example). The caller applies
// events after the textual substitution.
type Event struct {
	Name string
	Args []string
}

// Handler receives the submatches of one match (index 0 is the full match)
// and returns the literal replacement text. It may append events for the
// caller to apply afterward.
type Handler func(m []string, events *[]Event) string

// Run applies re to text, invoking handler for every match. It returns the
// rewritten text, whether any match fired, and the events the handler emitted
// in match order. Run holds no state between calls.
func Run(re *regexp.Regexp, handler Handler, text string) (string, bool, []Event) {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, false, nil
	}

	var events []Event
	var out []byte
	last := 0
	for _, loc := range locs {
		m := make([]string, len(loc)/2)
		for i := range m {
			start, end := loc[2*i], loc[2*i+1]
			if start < 0 {
				continue
			}
			m[i] = text[start:end]
		}
		out = append(out, text[last:loc[0]]...)
		out = append(out, handler(m, &events)...)
		last = loc[1]
	}
	out = append(out, text[last:]...)
	return string(out), true, events
}
