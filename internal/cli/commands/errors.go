package commands

import "fmt"

// ExitIOError is the exit status for unreadable input or unwritable output.
const ExitIOError = 255

// IO failure reasons, worded as the tool has always printed them.
const (
	reasonNotFound         = "No such file or directory"
	reasonPermissionDenied = "Permission denied"
)

// IOError reports an input or output path that could not be used. It is
// fatal: the run stops and nothing is written.
type IOError struct {
	Path   string
	Reason string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("apacheaccess: %s: %s", e.Path, e.Reason)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
