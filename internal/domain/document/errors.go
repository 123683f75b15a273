package document

import "errors"

var (
	ErrArtifactNotFound = errors.New("pdf artifact not found")

	// ErrGenerationFailed is fatal within a completed transition: the whole
	// transition rolls back so a timesheet is never completed without its
	// PDF.
	ErrGenerationFailed = errors.New("pdf generation failed")
)
