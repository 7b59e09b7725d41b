package command

import (
	"regexp"

	"github.com/treeline-io/treeline/internal/command/verb"
)

// Parts is the decomposition of the raw input text: an optional search
// pattern, optional regex flags, and an optional verb invocation.
// Nil means the group is absent; RegexFlags may point at an empty string
// when the user asked for a regex but typed no flag yet.
type Parts struct {
	Pattern    *string
	RegexFlags *string
	Verb       *verb.Invocation
}

// partsRE decomposes the visible input. Anchored at both ends, every
// group optional, so it matches any text:
//
//	[/] [pattern] [/flags] [separator verb-invocation]
//
// (?s) lets the invocation capture consume any remaining characters,
// newlines included, which batch-supplied command strings may contain.
// The flags class spells out word characters because \w is ASCII-only
// here and flags may be any letter.
var partsRE = regexp.MustCompile(`(?s)^(/)?([^\s/:]+)?(?:/([\p{L}\p{N}_]*))?(?:[\s:]+(.*))?$`)

// Submatch indices for partsRE.
const (
	reSlashBefore = 1
	rePattern     = 2
	reRegexFlags  = 3
	reVerb        = 4
)

// decomposeParts parses raw input text into its Parts.
// It is total: any string, including the empty one, decomposes.
func decomposeParts(raw string) Parts {
	var parts Parts

	m := partsRE.FindStringSubmatchIndex(raw)
	if m == nil {
		return parts
	}

	group := func(i int) (string, bool) {
		if m[2*i] < 0 {
			return "", false
		}
		return raw[m[2*i]:m[2*i+1]], true
	}

	if pattern, ok := group(rePattern); ok {
		parts.Pattern = &pattern
		// Flags only attach to a pattern. An explicit /flags suffix wins;
		// a bare leading slash asks for a regex with no flags.
		if flags, ok := group(reRegexFlags); ok {
			parts.RegexFlags = &flags
		} else if _, ok := group(reSlashBefore); ok {
			empty := ""
			parts.RegexFlags = &empty
		}
	}
	if text, ok := group(reVerb); ok {
		inv := verb.Parse(text)
		parts.Verb = &inv
	}

	return parts
}

// HasVerb returns true if the user has typed the invocation separator.
func (p Parts) HasVerb() bool {
	return p.Verb != nil
}

// PatternString returns the pattern, or "" if absent.
func (p Parts) PatternString() string {
	if p.Pattern == nil {
		return ""
	}
	return *p.Pattern
}

// FlagsString returns the regex flags, or "" if absent.
func (p Parts) FlagsString() string {
	if p.RegexFlags == nil {
		return ""
	}
	return *p.RegexFlags
}
