package ingestion

import "fmt"

// UnsupportedFormatError is returned when a document extension has no decoder.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported file format: missing extension (use PDF or DOCX)"
	}
	return fmt.Sprintf("unsupported file format %q (use PDF or DOCX)", e.Extension)
}

// FileReadError represents an error reading a document from disk
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read document %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// DecodeError represents a failure inside a format decoder
type DecodeError struct {
	Format string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode %s document: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("failed to decode %s document", e.Format)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
