package datastores

import (
	"context"
	"sync"
	"time"
)

type (
	EmailStatus string
	EmailLog    struct {
		To        string
		Name      string
		Subject   string
		Status    EmailStatus
		Timestamp time.Time
	}
)

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// EmailLogStore is an append-only log of confirmation email attempts.
type EmailLogStore interface {
	// Append stamps l with the current time and records it.
	Append(ctx context.Context, l *EmailLog) error
	List(ctx context.Context) ([]*EmailLog, error)
}

// EmailLogInmem implements [EmailLogStore].
type EmailLogInmem struct {
	Now func() time.Time

	mu   sync.Mutex
	logs []EmailLog
}

var _ EmailLogStore = (*EmailLogInmem)(nil)

func (s *EmailLogInmem) Append(_ context.Context, l *EmailLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.Timestamp = now(s.Now)
	s.logs = append(s.logs, *l)
	return nil
}

func (s *EmailLogInmem) List(_ context.Context) ([]*EmailLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logs := make([]*EmailLog, 0, len(s.logs))
	for _, l := range s.logs {
		logs = append(logs, &l)
	}
	return logs, nil
}
