package storage

import "errors"

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrEntryNotFound   = errors.New("gallery entry not found")
)

var (
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrNoImages     = errors.New("project must have at least one image")
)
