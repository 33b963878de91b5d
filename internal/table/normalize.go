package table

import "regexp"

// decorations are stripped from table names in this order. They vary
// between windows of the same table and are absent from hand histories.
var decorations = []*regexp.Regexp{
	regexp.MustCompile(` \(6 max\)`),
	regexp.MustCompile(` \(heads up\)`),
	regexp.MustCompile(` \(deep\)`),
	regexp.MustCompile(` \(deep hu\)`),
	regexp.MustCompile(` \(deep 6\)`),
	regexp.MustCompile(` \(2\)`),
	regexp.MustCompile(` \(edu\)`),
	regexp.MustCompile(` \(edu, 6 max\)`),
	regexp.MustCompile(` \(6\)`),
	regexp.MustCompile(` \(speed\)`),
	regexp.MustCompile(` no all-in`),
	regexp.MustCompile(` fast`),
	regexp.MustCompile(`,`),
	regexp.MustCompile(` 50BB min`),
	regexp.MustCompile(`\s+$`),
}

// NormalizeName strips decorative suffixes from a raw table name. The
// decoration list is reapplied until the name stops changing, so the
// result does not depend on decoration order and NormalizeName is
// idempotent.
func NormalizeName(raw string) string {
	name := raw
	for {
		prev := name
		for _, re := range decorations {
			name = re.ReplaceAllString(name, "")
		}
		if name == prev {
			return name
		}
	}
}
