package datastores

import (
	"bytes"
	_ "encoding" // for documentation links to [encoding]
	"encoding/base32"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// uuid32 is [uuid.UUID] but uses [base32] for text marshaling.
type uuid32 struct{ uuid.UUID }

var (
	uuid32Encoding   = base32.StdEncoding.WithPadding(base32.NoPadding) //nolint: gochecknoglobals,nolintlint
	uuid32EncodedLen = uuid32Encoding.EncodedLen(len(uuid32{}.UUID))    //nolint: gochecknoglobals,nolintlint
)

// initV7 uses time-ordered UUIDs so that IDs sort roughly by registration time.
func (id *uuid32) initV7() *uuid32 { id.UUID = uuid.Must(uuid.NewV7()); return id }

func (id uuid32) isZero() bool { return id.UUID == uuid.Nil }

// String returns the base32 text form.
func (id uuid32) String() string {
	b, _ := id.AppendText(nil)
	return string(b)
}

// AppendText implements [encoding.TextAppender].
func (id uuid32) AppendText(b []byte) ([]byte, error) {
	return uuid32Encoding.AppendEncode(b, id.UUID[:]), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (id uuid32) MarshalText() ([]byte, error) {
	return id.AppendText(nil)
}

var errInvalidID = errors.New("invalid id")

// UnmarshalText implements [encoding.TextUnmarshaler].
// Empty text leaves id unset. Lowercase input is accepted, the nil UUID is not.
func (id *uuid32) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		id.UUID = uuid.Nil
		return nil
	}
	if len(b) != uuid32EncodedLen {
		return fmt.Errorf("%w: length %d", errInvalidID, len(b))
	}
	var u uuid.UUID
	if _, err := uuid32Encoding.Decode(u[:], bytes.ToUpper(b)); err != nil {
		return fmt.Errorf("%w: %w", errInvalidID, err)
	}
	if u == uuid.Nil {
		return errInvalidID
	}
	id.UUID = u
	return nil
}
