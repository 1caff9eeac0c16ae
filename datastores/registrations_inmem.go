package datastores

import (
	"context"
	"slices"
	"sync"
	"time"
)

// RegistrationsInmem implements [RegistrationsStore].
type RegistrationsInmem struct {
	Now func() time.Time

	mu            sync.Mutex
	index         map[RegistrationID]int
	registrations []*Registration
}

var _ RegistrationsStore = (*RegistrationsInmem)(nil)

// NewRegistrationsInmem seeds the store with rs; records without an ID get one.
func NewRegistrationsInmem(rs ...*Registration) *RegistrationsInmem {
	s := &RegistrationsInmem{index: make(map[RegistrationID]int, len(rs))}
	for _, r := range rs {
		r = r.clone()
		if r.ID.IsZero() {
			r.ID = newRegistrationID()
		}
		s.index[r.ID] = len(s.registrations)
		s.registrations = append(s.registrations, r)
	}
	return s
}

func (s *RegistrationsInmem) Append(_ context.Context, r *Registration) (RegistrationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		s.index = make(map[RegistrationID]int)
	}
retry:
	r.ID = newRegistrationID()
	_, loaded := s.index[r.ID]
	if loaded {
		goto retry
	}
	r.Timestamp = now(s.Now)
	s.index[r.ID] = len(s.registrations)
	s.registrations = append(s.registrations, r.clone())
	return r.ID, nil
}

func (s *RegistrationsInmem) LoadAll(_ context.Context) ([]*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := make([]*Registration, 0, len(s.registrations))
	for _, r := range s.registrations {
		rs = append(rs, r.clone())
	}
	return rs, nil
}

func (s *RegistrationsInmem) Get(_ context.Context, id RegistrationID) (*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return s.registrations[index].clone(), nil
}

func (s *RegistrationsInmem) Replace(_ context.Context, id RegistrationID, r *Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return ErrObjectNotFound
	}
	r.ID = id
	s.registrations[index] = r.clone()
	return nil
}

func (s *RegistrationsInmem) Remove(_ context.Context, id RegistrationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return ErrObjectNotFound
	}
	delete(s.index, id)
	s.registrations = slices.Delete(s.registrations, index, index+1)
	for i := index; i < len(s.registrations); i++ {
		s.index[s.registrations[i].ID] = i
	}
	return nil
}
