package scanner

import "github.com/dlclark/regexp2"

// urangeTextPattern is the text-level grammar the unicode-range
// microsyntax must match once the tryScanUnicodeRange state machine
// has greedily accepted a span: "u+" then 1-6 code points in total,
// either all hex digits or zero or more hex digits followed by one or
// more "?" wildcards (so "u+??????" is accepted), optionally followed
// by "-" and 1-6 more hex digits. The state machine in productions.go is
// permissive about how it gets there (it allows mixing hex digits and
// "?" in ways the grammar alone wouldn't necessarily justify), so the
// accepted span is re-validated against this pattern before the token
// is returned rather than trusting the state machine alone.
var urangeTextPattern = regexp2.MustCompile(
	`^[uU]\+(?=[0-9a-fA-F?]{1,6}(-|$))([0-9a-fA-F]+|[0-9a-fA-F]*\?+)(-[0-9a-fA-F]{1,6})?$`,
	regexp2.None,
)

// matchesUrangeText reports whether text (the full matched "u+..."
// span, case-insensitive on the leading "u") satisfies the
// text-level unicode-range grammar.
func matchesUrangeText(text string) bool {
	ok, err := urangeTextPattern.MatchString(text)
	return err == nil && ok
}
