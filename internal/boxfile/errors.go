package boxfile

import "fmt"

const errorPrefix = "PARSE ERROR"

// FileOpenError reports a box file that could not be opened for reading.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("open box file %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}

// LineTooLongError reports a line that does not fit the line length limit.
// Index is 0-based.
type LineTooLongError struct {
	Path  string
	Index int
	Limit int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("%s: %s: %d: line length >= %d", errorPrefix, e.Path, e.Index, e.Limit)
}
