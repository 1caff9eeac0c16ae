package datastores

import (
	"context"
	"errors"
	"time"
)

type (
	RegistrationID struct{ uuid32 }
	Registration   struct {
		ID        RegistrationID
		Name      string
		Email     string
		Interest  Interest
		Timestamp time.Time
	}
)

func newRegistrationID() RegistrationID { return RegistrationID{*new(uuid32).initV7()} }

// ParseRegistrationID parses the text form returned by [RegistrationID.String].
func ParseRegistrationID(s string) (RegistrationID, error) {
	var id RegistrationID
	err := id.UnmarshalText([]byte(s))
	return id, err
}

// IsZero reports whether the ID was never assigned by a store.
func (id RegistrationID) IsZero() bool { return id.isZero() }

func (r *Registration) clone() *Registration {
	c := *r
	return &c
}

// RegistrationsStore keeps registrations in insertion order.
// Implementations are safe for concurrent use.
type RegistrationsStore interface {
	// Append assigns a new ID and the current time to r and adds it at the end.
	Append(ctx context.Context, r *Registration) (RegistrationID, error)
	// LoadAll returns every registration in storage order.
	LoadAll(ctx context.Context) ([]*Registration, error)
	Get(ctx context.Context, id RegistrationID) (*Registration, error)
	// Replace overwrites the registration, keeping its ID and position.
	Replace(ctx context.Context, id RegistrationID, r *Registration) error
	Remove(ctx context.Context, id RegistrationID) error
}

var (
	ErrObjectNotFound  = errors.New("store: object not found")
	ErrIndexOutOfRange = errors.New("store: index out of range")
)

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
