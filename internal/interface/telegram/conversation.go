package telegram

import "sync"

// convState is the step a /flight conversation is waiting on. The flow is a
// linear finite-state machine: airline, then flight number, then date.
type convState int

const (
	awaitingAirline convState = iota
	awaitingFlightNumber
	awaitingDate
)

// conversation carries the partial input collected so far for one chat.
type conversation struct {
	state        convState
	airline      string
	flightNumber string
}

// conversationStore tracks in-progress /flight flows per chat. Handlers
// read a snapshot, mutate it locally and write it back.
type conversationStore struct {
	mu     sync.Mutex
	byChat map[int64]conversation
}

func newConversationStore() *conversationStore {
	return &conversationStore{
		byChat: make(map[int64]conversation),
	}
}

// begin starts a fresh conversation, discarding any in-progress one.
func (s *conversationStore) begin(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChat[chatID] = conversation{state: awaitingAirline}
}

func (s *conversationStore) get(chatID int64) (conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.byChat[chatID]
	return conv, ok
}

func (s *conversationStore) put(chatID int64, conv conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChat[chatID] = conv
}

func (s *conversationStore) end(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byChat, chatID)
}
