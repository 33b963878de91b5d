package table

import "fmt"

// DecodeError reports a title that lacks a field the site requires.
type DecodeError struct {
	Title  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %q: %s", e.Title, e.Reason)
}

// ReasonUnrecognizedGame is used when no game token is found in a title.
const ReasonUnrecognizedGame = "unrecognized game token"
