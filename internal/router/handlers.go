package router

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/parlorchat/parlor/internal/chat"
)

type nameBody struct {
	Name string `json:"name"`
}

type messageBody struct {
	Message string `json:"message"`
}

// GET /users
func (rt *Router) currentUser(user chat.User, _ string, _ []byte) Result {
	return success(Envelope{User: userJSON(user)})
}

// POST /users
func (rt *Router) registerUser(_ chat.User, _ string, body []byte) Result {
	var input nameBody
	if err := decodeBody(body, &input); err != nil {
		return invalidInput(err)
	}
	if input.Name == "" {
		return invalidInput(errors.New("missing name"))
	}

	user, err := rt.users.Register(input.Name)
	if err != nil {
		return invalidInput(err)
	}

	rt.log.Info().Str("user_id", user.ID).Str("name", user.Name).Msg("user registered")
	return success(Envelope{User: userJSON(user)})
}

// DELETE /users
func (rt *Router) unregisterUser(user chat.User, _ string, _ []byte) Result {
	rt.users.Unregister(user)
	rt.log.Info().Str("user_id", user.ID).Msg("user unregistered")
	return success(Envelope{})
}

// GET /rooms
func (rt *Router) listRooms(_ chat.User, _ string, _ []byte) Result {
	return success(Envelope{Rooms: roomListJSON(rt.rooms.ListRooms())})
}

// GET /rooms/{id}
func (rt *Router) getRoom(_ chat.User, roomID string, _ []byte) Result {
	room, ok := rt.rooms.Room(roomID)
	if !ok {
		return failure(OutcomeNotFound, StatusFail, msgRoomNotFound)
	}
	return success(Envelope{Room: roomJSON(room)})
}

// POST /rooms
func (rt *Router) createRoom(_ chat.User, _ string, body []byte) Result {
	var input nameBody
	if err := decodeBody(body, &input); err != nil {
		return invalidInput(err)
	}
	if input.Name == "" {
		return invalidInput(errors.New("missing name"))
	}

	room, err := rt.rooms.CreateRoom(input.Name)
	if err != nil {
		return invalidInput(err)
	}

	rt.log.Info().Str("room_id", room.ID).Str("name", room.Name).Msg("room created")
	return success(Envelope{Room: roomJSON(room)})
}

// POST /rooms/{id}/messages
func (rt *Router) postMessage(user chat.User, roomID string, body []byte) Result {
	var input messageBody
	if err := decodeBody(body, &input); err != nil {
		return invalidInput(err)
	}
	if input.Message == "" {
		return invalidInput(errors.New("missing message"))
	}

	room, err := rt.rooms.PostMessage(roomID, user, input.Message)
	if err != nil {
		if errors.Is(err, chat.ErrRoomNotFound) {
			return failure(OutcomeNotFound, StatusFail, msgRoomNotFound)
		}
		return invalidInput(err)
	}

	rt.log.Debug().Str("room_id", roomID).Str("user_id", user.ID).Msg("message posted")
	return success(Envelope{Room: roomJSON(room)})
}

func decodeBody(body []byte, dst any) error {
	if len(body) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(body, dst)
}

func invalidInput(err error) Result {
	return failure(OutcomeInvalidInput, StatusFail, fmt.Sprintf("invalid request body: %v", err))
}
