package session

import "fmt"

// Op names the file operation that failed.
type Op string

const (
	OpOpen Op = "open"
	OpSave Op = "save"
)

// IOError reports a failed open or save.
type IOError struct {
	Op   Op
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
