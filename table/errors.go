package table

import "errors"

// ErrNoHeaderFound is returned when a document has no usable header line.
// It is fatal for that document only; callers usually skip the document.
var ErrNoHeaderFound = errors.New("no header line found")
