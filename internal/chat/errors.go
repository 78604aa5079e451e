package chat

import "errors"

var (
	// ErrEmptyName is returned when a user or room name is blank.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrEmptyMessage is returned when a posted message has no text.
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrRoomNotFound is returned when a room id resolves to nothing.
	ErrRoomNotFound = errors.New("room not found")
)
