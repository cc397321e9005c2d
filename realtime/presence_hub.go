package realtime

import (
	"sync"

	"github.com/foodshare/foodshare-app/utils"
)

// Event types
const (
	EventListingClaimed = "listing_claimed"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Session is the slice of a websocket connection the hub needs. A
// *websocket.Conn satisfies it.
type Session interface {
	WriteJSON(v interface{}) error
	Close() error
}

// PresenceHub tracks which users currently hold a live connection. It is
// process-local and volatile: entries live only as long as the connection,
// and an entry for a user who vanished without a disconnect stays until its
// session is unregistered. Multi-instance deployments are out of scope.
type PresenceHub struct {
	sessions map[uint]Session // user ID -> active session
	mutex    sync.Mutex
}

var hub = PresenceHub{
	sessions: make(map[uint]Session),
}

// RegisterUser binds a user to a session. The last registration for a user
// wins; a stale session from an earlier registration is silently displaced.
func RegisterUser(userID uint, s Session) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.sessions[userID] = s
}

// UnregisterSession removes whichever user holds the disconnecting session.
// No-op when the session was already displaced by a newer registration.
func UnregisterSession(s Session) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for userID, sess := range hub.sessions {
		if sess == s {
			delete(hub.sessions, userID)
			break
		}
	}
}

// LookupUser returns the user's active session, if any.
func LookupUser(userID uint) (Session, bool) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	s, ok := hub.sessions[userID]
	return s, ok
}

// PushToUser delivers an event to the user's session if one is registered.
// Best effort: returns false when the user is offline or the write fails,
// and never blocks the caller on anything but the socket write itself.
// The hub lock is held across the write; websocket connections tolerate
// only one writer at a time.
func PushToUser(userID uint, event string, data interface{}) bool {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	s, ok := hub.sessions[userID]
	if !ok {
		return false
	}

	if err := s.WriteJSON(Message{Event: event, Data: data}); err != nil {
		utils.ErrorLogger.Errorf("Error pushing %s to user %d: %v", event, userID, err)
		return false
	}
	return true
}

// OnlineCount reports how many users currently hold a session.
func OnlineCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.sessions)
}
