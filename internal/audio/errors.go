package audio

import "errors"

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidContainer  = errors.New("invalid audio container")
)
