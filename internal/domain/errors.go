package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrBatchNotFound       = errors.New("batch not found")
	ErrNoRecords           = errors.New("batch has no records")
	ErrNoFiles             = errors.New("no input files provided")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrStorageList         = errors.New("listing storage objects failed")
)
