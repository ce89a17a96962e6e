package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
)

type requestKey struct {
	requester, target uuid.UUID
}

// ConnectionStore holds pending requests and formed connections behind
// one mutex, so "pending and connected are mutually exclusive for a
// pair" and the accept/reject consume-once semantics hold under
// concurrent callers.
type ConnectionStore struct {
	mu        sync.RWMutex
	requests  map[requestKey]models.ConnectionRequest
	connected map[repository.Pair]struct{}
	adjacency map[uuid.UUID]map[uuid.UUID]struct{}
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{
		requests:  make(map[requestKey]models.ConnectionRequest),
		connected: make(map[repository.Pair]struct{}),
		adjacency: make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (s *ConnectionStore) CreateRequest(ctx context.Context, requester, target uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.connected[repository.OrderPair(requester, target)]; ok {
		return false, apperrors.ErrAlreadyConnected
	}
	if _, ok := s.requests[requestKey{requester, target}]; ok {
		return false, apperrors.ErrDuplicateRequest
	}

	// Mirrored pending request: both sides want the connection, so form
	// it now instead of leaving two dangling requests.
	if _, ok := s.requests[requestKey{target, requester}]; ok {
		delete(s.requests, requestKey{target, requester})
		s.connect(requester, target)
		return true, nil
	}

	s.requests[requestKey{requester, target}] = models.ConnectionRequest{
		Requester: requester,
		Target:    target,
		Timestamp: at,
	}
	return false, nil
}

func (s *ConnectionStore) PendingFor(ctx context.Context, target uuid.UUID) ([]models.ConnectionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]models.ConnectionRequest, 0)
	for key, req := range s.requests {
		if key.target == target {
			pending = append(pending, req)
		}
	}
	// Oldest first so the UI shows the longest-waiting request on top.
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Timestamp.Before(pending[j].Timestamp)
	})
	return pending, nil
}

func (s *ConnectionStore) Accept(ctx context.Context, requester, target uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := requestKey{requester, target}
	if _, ok := s.requests[key]; !ok {
		return apperrors.ErrRequestNotFound
	}
	delete(s.requests, key)
	s.connect(requester, target)
	return nil
}

func (s *ConnectionStore) Reject(ctx context.Context, requester, target uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := requestKey{requester, target}
	if _, ok := s.requests[key]; !ok {
		return apperrors.ErrRequestNotFound
	}
	delete(s.requests, key)
	return nil
}

func (s *ConnectionStore) ConnectionsOf(ctx context.Context, identity uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	peers := make([]uuid.UUID, 0, len(s.adjacency[identity]))
	for peer := range s.adjacency[identity] {
		peers = append(peers, peer)
	}
	return peers, nil
}

func (s *ConnectionStore) Connected(ctx context.Context, a, b uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.connected[repository.OrderPair(a, b)]
	return ok, nil
}

// connect records the symmetric edge. Callers hold the write lock.
func (s *ConnectionStore) connect(a, b uuid.UUID) {
	s.connected[repository.OrderPair(a, b)] = struct{}{}
	for from, to := range map[uuid.UUID]uuid.UUID{a: b, b: a} {
		if s.adjacency[from] == nil {
			s.adjacency[from] = make(map[uuid.UUID]struct{})
		}
		s.adjacency[from][to] = struct{}{}
	}
}
