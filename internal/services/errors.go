package services

import "errors"

// Sentinel errors the HTTP layer maps to API responses.
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
