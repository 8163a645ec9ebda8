package service

import "errors"

var (
	ErrNotPDF           = errors.New("file must be a PDF")
	ErrUnknownColumn    = errors.New("unknown board column")
	ErrExtractionFailed = errors.New("syllabus extraction failed")
	ErrNoData           = errors.New("no syllabus data available")
)
