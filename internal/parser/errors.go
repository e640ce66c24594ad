package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingFile matches (errors.Is) any MissingFileError.
	ErrMissingFile = errors.New("missing measurement file")
	// ErrMalformedRow matches (errors.Is) any MalformedRowError.
	ErrMalformedRow = errors.New("malformed row")
)

// MissingFileError reports that a codec's measurement file does not exist.
type MissingFileError struct {
	Codec Codec
	Path  string
	Err   error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("codec %s: %v: %s", e.Codec, ErrMissingFile, e.Path)
}

func (e *MissingFileError) Is(target error) bool { return target == ErrMissingFile }

func (e *MissingFileError) Unwrap() error { return e.Err }

// MalformedRowError reports a header without a required column, or a row whose
// required field could not be parsed. Line is the CSV line number, 0 for header problems.
type MalformedRowError struct {
	Codec  Codec
	Path   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	switch {
	case e.Line == 0 && e.Column != "":
		return fmt.Sprintf("codec %s: %v: %s: header has no %q column", e.Codec, ErrMalformedRow, e.Path, e.Column)
	case e.Line == 0:
		return fmt.Sprintf("codec %s: %v: %s: %v", e.Codec, ErrMalformedRow, e.Path, e.Err)
	case e.Column == "":
		return fmt.Sprintf("codec %s: %v: %s line %d: %v", e.Codec, ErrMalformedRow, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("codec %s: %v: %s line %d: column %q value %q: %v", e.Codec, ErrMalformedRow, e.Path, e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Is(target error) bool { return target == ErrMalformedRow }

func (e *MalformedRowError) Unwrap() error { return e.Err }
