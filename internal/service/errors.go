package service

import "errors"

// Input errors are reported to the caller as client errors; nothing has been persisted
// when one of them is returned.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnreadableFile      = errors.New("file cannot be parsed as a spreadsheet")
	ErrMissingColumns      = errors.New("missing required columns")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrPositionRequired    = errors.New("position is required")
	ErrNoResults           = errors.New("no applicants found")
	ErrReaderNil           = errors.New("reader is nil")
)
