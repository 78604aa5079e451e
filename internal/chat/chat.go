// Package chat holds the in-memory domain state of the server: registered
// users, chat rooms, and the messages posted into them. Registries are the
// only durable state in the process; everything else derives from them.
package chat

// User is a registered identity. The ID is the sole authentication token.
type User struct {
	ID   string
	Name string
}

// Message is a single posted chat line. Author is captured by value at post
// time, so unregistering the author later does not change how the message
// renders.
type Message struct {
	Author User
	Text   string
}

// Room is a chat room with its append-only message log.
type Room struct {
	ID       string
	Name     string
	Messages []Message
}

// RoomSummary is the id+name view used when listing rooms.
type RoomSummary struct {
	ID   string
	Name string
}
