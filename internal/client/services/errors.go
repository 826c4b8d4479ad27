package services

import "errors"

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrInvalidBookmarks = errors.New("bookmarks file is not valid JSON")
)
