package storage

import "errors"

var (
	ErrProjectExists   = errors.New("project already exists")
	ErrProjectNotFound = errors.New("project not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrMalformedStore  = errors.New("malformed store file")
)

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrFileNotFound    = errors.New("file not found")
	ErrOutsideRoot     = errors.New("path escapes upload root")
)
