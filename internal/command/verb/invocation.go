// Package verb parses verb invocations: the text a user types after the
// pattern separator, naming a verb and its arguments. Whether the named
// verb actually exists is checked elsewhere, against application state.
package verb

import "strings"

// Invocation is an unvalidated verb call: a name and its raw arguments.
type Invocation struct {
	// Name is the first whitespace-delimited word.
	Name string

	// Args is the remainder of the text, trimmed.
	Args string
}

// Parse splits invocation text into name and arguments.
// Empty or all-whitespace text yields an empty invocation.
func Parse(text string) Invocation {
	text = strings.TrimSpace(text)
	if text == "" {
		return Invocation{}
	}

	name := strings.Fields(text)[0]
	return Invocation{
		Name: name,
		Args: strings.TrimSpace(strings.TrimPrefix(text, name)),
	}
}

// IsEmpty returns true if no verb name has been typed yet.
func (inv Invocation) IsEmpty() bool {
	return inv.Name == ""
}

// String reassembles the invocation for display.
func (inv Invocation) String() string {
	if inv.Args == "" {
		return inv.Name
	}
	return inv.Name + " " + inv.Args
}
