// Package rewrite implements the reference locator: one tagged rewrite rule
// per (entity kind, dialect) reference shape. Rules are plain text
// transformations over a whole file; each is idempotent, so re-running a
// rename over already-rewritten text changes nothing.
//
// The dialects are the TMDL declaration grammar, DAX expressions, M source
// queries, and PBIR visual JSON (in both its direct and string-escaped
// nesting conventions). None of them is parsed into a tree; the rules match
// the known reference shapes directly, which keeps each shape independently
// testable and lets new shapes be added without touching existing ones.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/remodelcli/remodel/internal/atomicfile"
	"github.com/remodelcli/remodel/internal/model"
)

// Rule is a single dialect-specific rewrite. Apply returns the transformed
// text and whether anything changed; it must be a no-op on text that does
// not contain the target reference shape.
type Rule struct {
	Name  string
	Apply func(text string) (string, bool)
}

// regexRule builds a Rule from a pattern and an expansion-style replacement.
// The replacement is taken literally except for ${n} group references that
// the caller writes explicitly.
func regexRule(name, pattern, replacement string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name: name,
		Apply: func(text string) (string, bool) {
			out := re.ReplaceAllString(text, replacement)
			return out, out != text
		},
	}
}

// funcRule builds a Rule from a pattern and a match-level replacement
// function, for shapes that need a veto the regexp syntax cannot express.
func funcRule(name, pattern string, repl func(match string) string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name: name,
		Apply: func(text string) (string, bool) {
			out := re.ReplaceAllStringFunc(text, repl)
			return out, out != text
		},
	}
}

// q escapes an identifier for use inside a pattern.
func q(ident string) string { return regexp.QuoteMeta(ident) }

// lit escapes an identifier for use inside a replacement, so that dollar
// signs in entity names are not treated as group references.
func lit(ident string) string { return strings.ReplaceAll(ident, "$", "$$") }

// Apply runs rules in sequence over one in-memory text. Later rules see the
// output of earlier ones; the caller writes the result back once.
func Apply(text string, rules []Rule) (string, bool) {
	changed := false
	for _, r := range rules {
		var c bool
		text, c = r.Apply(text)
		changed = changed || c
	}
	return text, changed
}

// File reads path (BOM tolerant), applies rules, and writes the result back
// atomically when anything changed. Returns whether the file was modified.
func File(path string, rules []Rule) (bool, error) {
	text, err := model.ReadText(path)
	if err != nil {
		return false, err
	}
	out, changed := Apply(text, rules)
	if !changed {
		return false, nil
	}
	if err := atomicfile.WriteFile(path, []byte(out), 0); err != nil {
		return false, err
	}
	return true, nil
}
