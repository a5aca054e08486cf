package ratelimit_test

import (
	"context"
	"time"
)

// fakeStore is an in-memory ratelimit.Store with fault injection for
// exercising the check/redeem protocol without a real backend.
type fakeStore struct {
	data     map[string][]byte
	ttls     map[string]time.Duration
	getErr   error
	putErr   error
	getCalls int
	putCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.getCalls++

	if s.getErr != nil {
		return nil, s.getErr
	}

	return s.data[key], nil
}

func (s *fakeStore) Put(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	s.putCalls++

	if s.putErr != nil {
		return s.putErr
	}

	s.data[key] = payload
	s.ttls[key] = ttl

	return nil
}
