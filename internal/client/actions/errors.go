package actions

import "errors"

var (
	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrEmptyPostID      = errors.New("post id is required")
	ErrEmptySubforum    = errors.New("subforum is required")
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyBody        = errors.New("body is required")
	ErrEmptyDescription = errors.New("description is required")
)
