package chat

import (
	"sync"

	"github.com/google/uuid"
)

// RoomRegistry stores chat rooms and their message logs. Rooms are kept in
// creation order for listing and indexed by id for lookups. All returned
// rooms are snapshots: the registry never hands out its own message slices.
type RoomRegistry struct {
	mu    sync.RWMutex
	order []string
	rooms map[string]*Room
}

// NewRoomRegistry constructs an empty room registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom creates a room with a fresh id and an empty message log. Room
// names are not deduplicated; every call creates a new room.
func (r *RoomRegistry) CreateRoom(name string) (Room, error) {
	if name == "" {
		return Room{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room := &Room{ID: uuid.NewString(), Name: name, Messages: []Message{}}
	r.rooms[room.ID] = room
	r.order = append(r.order, room.ID)
	return snapshot(room), nil
}

// Room returns the room with the given id, including its full message log.
func (r *RoomRegistry) Room(id string) (Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return Room{}, false
	}
	return snapshot(room), true
}

// ListRooms returns all rooms in creation order, without messages.
func (r *RoomRegistry) ListRooms() []RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]RoomSummary, 0, len(r.order))
	for _, id := range r.order {
		room := r.rooms[id]
		summaries = append(summaries, RoomSummary{ID: room.ID, Name: room.Name})
	}
	return summaries
}

// PostMessage appends a message authored by the given user to the room's log
// and returns the updated room. The author is captured by value.
func (r *RoomRegistry) PostMessage(roomID string, author User, text string) (Room, error) {
	if text == "" {
		return Room{}, ErrEmptyMessage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return Room{}, ErrRoomNotFound
	}
	room.Messages = append(room.Messages, Message{Author: author, Text: text})
	return snapshot(room), nil
}

// Len reports the number of rooms.
func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}

func snapshot(room *Room) Room {
	copied := Room{ID: room.ID, Name: room.Name, Messages: make([]Message, len(room.Messages))}
	copy(copied.Messages, room.Messages)
	return copied
}
