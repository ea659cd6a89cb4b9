package domain

import "errors"

var (
	ErrSourceNotFound = errors.New("source image not found")
	ErrDecodeFailed   = errors.New("failed to decode image")
	ErrResizeFailed   = errors.New("failed to resize image")
)
