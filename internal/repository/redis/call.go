// Package redis implements the call-state store on Redis, for
// deployments where signaling state must survive a process restart or
// be shared across replicas. Joint transitions use WATCH over both
// parties' keys plus MULTI, so the two views can never diverge.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/redis/go-redis/v9"
)

// Optimistic-lock retries before giving up on a contended pair.
const txRetries = 5

type CallStore struct {
	client *redis.Client
}

func NewCallStore(client *redis.Client) *CallStore {
	return &CallStore{client: client}
}

func callKey(identity uuid.UUID) string {
	return "call:party:" + identity.String()
}

func (s *CallStore) Initiate(ctx context.Context, caller, callee uuid.UUID) error {
	return s.transition(ctx, caller, callee, func(tx *redis.Tx, pipe func(func(redis.Pipeliner) error) error) error {
		for _, key := range []string{callKey(caller), callKey(callee)} {
			if err := exists(ctx, tx, key); err != nil {
				return err
			}
		}
		record, err := json.Marshal(models.CallState{IsActive: false, Caller: caller, Callee: callee})
		if err != nil {
			return fmt.Errorf("marshal call state: %w", err)
		}
		return pipe(func(p redis.Pipeliner) error {
			p.Set(ctx, callKey(caller), record, 0)
			p.Set(ctx, callKey(callee), record, 0)
			return nil
		})
	})
}

func (s *CallStore) Accept(ctx context.Context, initiator, callee uuid.UUID) error {
	return s.transition(ctx, initiator, callee, func(tx *redis.Tx, pipe func(func(redis.Pipeliner) error) error) error {
		call, err := load(ctx, tx, callKey(callee))
		if err != nil {
			return err
		}
		if call == nil || call.IsActive || call.Caller != initiator || call.Callee != callee {
			return apperrors.ErrNoSuchRingingCall
		}
		call.IsActive = true
		record, err := json.Marshal(call)
		if err != nil {
			return fmt.Errorf("marshal call state: %w", err)
		}
		return pipe(func(p redis.Pipeliner) error {
			p.Set(ctx, callKey(call.Caller), record, 0)
			p.Set(ctx, callKey(call.Callee), record, 0)
			return nil
		})
	})
}

func (s *CallStore) Decline(ctx context.Context, initiator, callee uuid.UUID) error {
	return s.transition(ctx, initiator, callee, func(tx *redis.Tx, pipe func(func(redis.Pipeliner) error) error) error {
		call, err := load(ctx, tx, callKey(callee))
		if err != nil {
			return err
		}
		if call == nil || call.IsActive || call.Caller != initiator || call.Callee != callee {
			return apperrors.ErrNoSuchRingingCall
		}
		return pipe(func(p redis.Pipeliner) error {
			p.Del(ctx, callKey(call.Caller), callKey(call.Callee))
			return nil
		})
	})
}

func (s *CallStore) End(ctx context.Context, party, partner uuid.UUID) error {
	return s.transition(ctx, party, partner, func(tx *redis.Tx, pipe func(func(redis.Pipeliner) error) error) error {
		call, err := load(ctx, tx, callKey(party))
		if err != nil {
			return err
		}
		if call == nil || !call.IsActive || call.Other(party) != partner {
			return apperrors.ErrNoActiveCall
		}
		return pipe(func(p redis.Pipeliner) error {
			p.Del(ctx, callKey(call.Caller), callKey(call.Callee))
			return nil
		})
	})
}

func (s *CallStore) StateFor(ctx context.Context, identity uuid.UUID) (*models.CallState, error) {
	raw, err := s.client.Get(ctx, callKey(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get call state: %w", err)
	}
	var call models.CallState
	if err := json.Unmarshal(raw, &call); err != nil {
		return nil, fmt.Errorf("unmarshal call state: %w", err)
	}
	return &call, nil
}

// transition runs fn under WATCH on both parties' keys and retries when
// a concurrent transition invalidates the transaction.
func (s *CallStore) transition(ctx context.Context, a, b uuid.UUID, fn func(tx *redis.Tx, pipe func(func(redis.Pipeliner) error) error) error) error {
	for i := 0; i < txRetries; i++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			return fn(tx, func(build func(redis.Pipeliner) error) error {
				_, err := tx.TxPipelined(ctx, build)
				return err
			})
		}, callKey(a), callKey(b))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("call transition: too much contention on %s/%s", a, b)
}

func exists(ctx context.Context, tx *redis.Tx, key string) error {
	n, err := tx.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check call state: %w", err)
	}
	if n > 0 {
		return apperrors.ErrAlreadyInCall
	}
	return nil
}

func load(ctx context.Context, tx *redis.Tx, key string) (*models.CallState, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get call state: %w", err)
	}
	var call models.CallState
	if err := json.Unmarshal(raw, &call); err != nil {
		return nil, fmt.Errorf("unmarshal call state: %w", err)
	}
	return &call, nil
}
