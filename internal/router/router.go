// Package router resolves incoming requests into operations over the chat
// registries. It owns path parsing, identity resolution, and body
// validation; the HTTP container above it only moves bytes.
package router

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/chat"
)

// AuthHeader is the request header carrying the caller's user id.
const AuthHeader = "auth"

// Outcome classifies a dispatch result. The transport maps it to an HTTP
// status code.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeUnauthorized
	OutcomeNotFound
	OutcomeUnknownPath
	OutcomeInvalidInput
	OutcomeInternal
)

// Fixed error texts carried in failure envelopes.
const (
	msgUnauthorized = "Unauthorized"
	msgUnknownPath  = "Path not found"
	msgRoomNotFound = "ChatRoom not found"
	msgInternal     = "unknown error, please contact me"
)

// Request is the transport-agnostic view of an incoming request.
type Request struct {
	Method string
	Path   string
	Header func(name string) string
	Body   []byte
}

// Result pairs the response envelope with its outcome classification.
type Result struct {
	Outcome  Outcome
	Envelope Envelope
}

// Router dispatches requests against the user and room registries. It holds
// no per-request state; all durable state lives in the registries.
type Router struct {
	users  *chat.UserRegistry
	rooms  *chat.RoomRegistry
	log    *zerolog.Logger
	routes []route
}

// roomIDSegment marks a path segment that must look like a room id.
const roomIDSegment = "{room_id}"

type route struct {
	method   string
	segments []string
	auth     bool
	handle   func(rt *Router, user chat.User, roomID string, body []byte) Result
}

// New constructs a router over the given registries. Routes are matched in
// declaration order; the first match wins.
func New(users *chat.UserRegistry, rooms *chat.RoomRegistry, logger *zerolog.Logger) *Router {
	rt := &Router{users: users, rooms: rooms, log: logger}
	rt.routes = []route{
		{method: "GET", segments: []string{"users"}, auth: true, handle: (*Router).currentUser},
		{method: "POST", segments: []string{"users"}, handle: (*Router).registerUser},
		{method: "DELETE", segments: []string{"users"}, auth: true, handle: (*Router).unregisterUser},
		{method: "GET", segments: []string{"rooms"}, auth: true, handle: (*Router).listRooms},
		{method: "GET", segments: []string{"rooms", roomIDSegment}, auth: true, handle: (*Router).getRoom},
		{method: "POST", segments: []string{"rooms"}, auth: true, handle: (*Router).createRoom},
		{method: "POST", segments: []string{"rooms", roomIDSegment, "messages"}, auth: true, handle: (*Router).postMessage},
	}
	return rt
}

// Dispatch resolves a request to exactly one outcome. It never panics
// outward: unexpected failures collapse into an Internal envelope.
func (rt *Router) Dispatch(req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			rt.log.Error().Interface("panic", r).Str("path", req.Path).Msg("dispatch panicked")
			result = failure(OutcomeInternal, StatusFail, msgInternal)
		}
	}()

	segments := splitPath(req.Path)

	for _, candidate := range rt.routes {
		roomID, ok := candidate.match(req.Method, segments)
		if !ok {
			continue
		}

		var user chat.User
		if candidate.auth {
			user, ok = rt.identify(req)
			if !ok {
				return failure(OutcomeUnauthorized, StatusUnauthorized, msgUnauthorized)
			}
		}
		return candidate.handle(rt, user, roomID, req.Body)
	}

	return failure(OutcomeUnknownPath, StatusFail, msgUnknownPath)
}

// identify resolves the auth header to a registered user. A missing header,
// a blank value, and an unknown id are deliberately indistinguishable.
func (rt *Router) identify(req Request) (chat.User, bool) {
	id := strings.TrimSpace(req.Header(AuthHeader))
	if id == "" {
		return chat.User{}, false
	}
	return rt.users.FindByID(id)
}

func (r route) match(method string, segments []string) (roomID string, ok bool) {
	if method != r.method || len(segments) != len(r.segments) {
		return "", false
	}
	for i, want := range r.segments {
		if want == roomIDSegment {
			if !isRoomID(segments[i]) {
				return "", false
			}
			roomID = segments[i]
			continue
		}
		if segments[i] != want {
			return "", false
		}
	}
	return roomID, true
}

// splitPath breaks a request path into segments, tolerating a trailing
// slash. "/rooms/abc/" yields ["rooms", "abc"].
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// isRoomID reports whether a segment has the loose UUID-like shape room ids
// use: 32 to 36 characters, hex digits or dashes.
func isRoomID(segment string) bool {
	if len(segment) < 32 || len(segment) > 36 {
		return false
	}
	for _, r := range segment {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

func success(env Envelope) Result {
	env.Status = StatusOK
	return Result{Outcome: OutcomeOK, Envelope: env}
}

func failure(outcome Outcome, status Status, message string) Result {
	return Result{Outcome: outcome, Envelope: Envelope{Status: status, ErrorMessage: message}}
}
