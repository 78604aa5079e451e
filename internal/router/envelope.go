package router

import (
	"github.com/samber/lo"

	"github.com/parlorchat/parlor/internal/chat"
)

// Status is the envelope-level result marker, rendered as its literal name.
type Status string

const (
	StatusOK           Status = "OK"
	StatusFail         Status = "FAIL"
	StatusUnauthorized Status = "UNAUTHORIZED"
)

// Envelope is the uniform response wrapper. Payload fields are only present
// when set; error_message is only present on failures.
type Envelope struct {
	Status       Status     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	User         *UserJSON  `json:"user,omitempty"`
	Room         *RoomJSON  `json:"room,omitempty"`
	Rooms        []RoomJSON `json:"rooms,omitzero"`
}

// UserJSON is the wire form of a user.
type UserJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomJSON is the wire form of a room. Messages is omitted in list responses
// and always present (possibly empty) in single-room responses.
type RoomJSON struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Messages []MessageJSON `json:"messages,omitzero"`
}

// MessageJSON is the wire form of a message. The author's name is serialized
// under "username"; that field name is part of the wire contract.
type MessageJSON struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

func userJSON(user chat.User) *UserJSON {
	return &UserJSON{ID: user.ID, Name: user.Name}
}

func roomJSON(room chat.Room) *RoomJSON {
	return &RoomJSON{
		ID:   room.ID,
		Name: room.Name,
		Messages: lo.Map(room.Messages, func(m chat.Message, _ int) MessageJSON {
			return MessageJSON{Username: m.Author.Name, Message: m.Text}
		}),
	}
}

func roomListJSON(summaries []chat.RoomSummary) []RoomJSON {
	return lo.Map(summaries, func(s chat.RoomSummary, _ int) RoomJSON {
		return RoomJSON{ID: s.ID, Name: s.Name}
	})
}
