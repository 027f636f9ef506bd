package diag

// Note carries secondary context attached to a diagnostic, for example the
// first-seen definition of a conflicting tag.
type Note struct {
	Msg string
}

// Diagnostic is one finding produced by a dictionary transformation.
// Subject names what the finding is about: a tag number rendered as a string,
// an element name, or a message type.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Subject  string
	Message  string
	Notes    []Note
}
