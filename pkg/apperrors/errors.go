package apperrors

import "errors"

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrMissingSourceFile = errors.New("missing source file")
)
