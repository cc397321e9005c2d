package realtime

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foodshare/foodshare-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

type fakeSession struct {
	mu       sync.Mutex
	messages []Message
	failWith error
}

func (f *fakeSession) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.messages = append(f.messages, v.(Message))
	return nil
}

func (f *fakeSession) Close() error { return nil }

func (f *fakeSession) received() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.messages...)
}

func TestRegisterLastWins(t *testing.T) {
	h1 := &fakeSession{}
	h2 := &fakeSession{}

	RegisterUser(501, h1)
	RegisterUser(501, h2)

	got, ok := LookupUser(501)
	assert.True(t, ok)
	assert.Same(t, h2, got)

	// Unregistering the live session empties the entry even though h1 was
	// never explicitly removed.
	UnregisterSession(h2)
	_, ok = LookupUser(501)
	assert.False(t, ok)
}

func TestUnregisterStaleSessionIsNoop(t *testing.T) {
	h1 := &fakeSession{}
	h2 := &fakeSession{}

	RegisterUser(502, h1)
	RegisterUser(502, h2)

	// h1 was displaced; removing it must not evict h2
	UnregisterSession(h1)
	got, ok := LookupUser(502)
	assert.True(t, ok)
	assert.Same(t, h2, got)

	UnregisterSession(h2)
}

func TestPushToRegisteredUser(t *testing.T) {
	sess := &fakeSession{}
	RegisterUser(503, sess)
	defer UnregisterSession(sess)

	delivered := PushToUser(503, EventListingClaimed, map[string]interface{}{"listing_id": 7})
	assert.True(t, delivered)

	msgs := sess.received()
	assert.Len(t, msgs, 1)
	assert.Equal(t, EventListingClaimed, msgs[0].Event)
}

func TestPushToOfflineUserIsBestEffort(t *testing.T) {
	delivered := PushToUser(999001, EventListingClaimed, nil)
	assert.False(t, delivered)
}

func TestPushWriteFailureReportsUndelivered(t *testing.T) {
	sess := &fakeSession{failWith: assert.AnError}
	RegisterUser(504, sess)
	defer UnregisterSession(sess)

	var logged bytes.Buffer
	utils.ErrorLogger.SetOutput(&logged)
	defer utils.ErrorLogger.SetOutput(os.Stderr)

	delivered := PushToUser(504, EventListingClaimed, nil)
	assert.False(t, delivered)

	// A failed delivery is best-effort but never silent
	assert.Contains(t, logged.String(), "Error pushing")
}

func TestConcurrentRegistryAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := &fakeSession{}
			userID := uint(600 + i)
			RegisterUser(userID, sess)
			LookupUser(userID)
			PushToUser(userID, EventListingClaimed, nil)
			UnregisterSession(sess)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		_, ok := LookupUser(uint(600 + i))
		assert.False(t, ok)
	}
}
