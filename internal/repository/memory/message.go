package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
)

// MessageStore keeps one append-only log per unordered identity pair.
// Sequence numbers are assigned under the store lock, so the log order
// is stable even when two sends carry the same timestamp.
type MessageStore struct {
	mu      sync.RWMutex
	logs    map[repository.Pair][]models.Message
	nextSeq int64
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		logs:    make(map[repository.Pair][]models.Message),
		nextSeq: 1,
	}
}

func (s *MessageStore) Append(ctx context.Context, sender, recipient uuid.UUID, content string, at time.Time) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.Message{
		Seq:       s.nextSeq,
		Sender:    sender,
		Content:   content,
		Timestamp: at,
	}
	s.nextSeq++

	pair := repository.OrderPair(sender, recipient)
	s.logs[pair] = append(s.logs[pair], msg)
	return &msg, nil
}

func (s *MessageStore) List(ctx context.Context, a, b uuid.UUID, before int64, limit int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[repository.OrderPair(a, b)]

	// The log is already ascending by Seq; apply the cursor window.
	end := len(log)
	if before > 0 {
		for end > 0 && log[end-1].Seq >= before {
			end--
		}
	}
	start := 0
	if limit > 0 && end-start > limit {
		start = end - limit
	}

	out := make([]models.Message, end-start)
	copy(out, log[start:end])
	return out, nil
}
