package signup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/oaiiae/hackathon-signup/datastores"
	"github.com/oaiiae/hackathon-signup/mailer"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		rules     Rules
		want      error
	}{
		{"ok", Candidate{Name: "Ana Silva", Email: "ana@x.com"}, Rules{}, nil},
		{"ok with interest", Candidate{Name: "Ana", Email: "a@b.c", Interest: "tourism"}, Rules{RequireInterest: true}, nil},
		{"blank name", Candidate{Name: " \t", Email: "ana@x.com"}, Rules{}, ErrEmptyName},
		{"name checked first", Candidate{Email: "bad"}, Rules{}, ErrEmptyName},
		{"blank email", Candidate{Name: "Ana", Email: "  "}, Rules{}, ErrEmptyEmail},
		{"no at", Candidate{Name: "Ana", Email: "ana.x.com"}, Rules{}, ErrInvalidEmailFormat},
		{"no dot after at", Candidate{Name: "Ana", Email: "ana@xcom"}, Rules{}, ErrInvalidEmailFormat},
		{"space inside", Candidate{Name: "Ana", Email: "an a@x.com"}, Rules{}, ErrInvalidEmailFormat},
		{"surrounding spaces", Candidate{Name: "Ana", Email: " ana@x.com\t"}, Rules{}, nil},
		{"missing interest", Candidate{Name: "Ana", Email: "ana@x.com"}, Rules{RequireInterest: true}, ErrMissingCategory},
		{"unknown interest", Candidate{Name: "Ana", Email: "ana@x.com", Interest: "robotics"}, Rules{}, ErrMissingCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.candidate, tt.rules)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestValidate_Properties(t *testing.T) {
	segment := rapid.StringMatching(`[^\s@]{1,10}`)

	t.Run("well formed emails pass", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			email := segment.Draw(t, "local") + "@" + segment.Draw(t, "domain") + "." + segment.Draw(t, "tld")
			assert.NoError(t, Validate(Candidate{Name: "x", Email: email}, Rules{}))
		})
	})

	t.Run("emails without at fail", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			email := rapid.StringMatching(`[a-z.]{1,20}`).Draw(t, "email")
			assert.ErrorIs(t, Validate(Candidate{Name: "x", Email: email}, Rules{}), ErrInvalidEmailFormat)
		})
	})

	t.Run("emails without dot after at fail", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			email := rapid.StringMatching(`[a-z.]{1,8}`).Draw(t, "local") + "@" + rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "domain")
			assert.ErrorIs(t, Validate(Candidate{Name: "x", Email: email}, Rules{}), ErrInvalidEmailFormat)
		})
	})

	t.Run("blank names fail", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			name := rapid.StringMatching(`[ \t\n]{0,5}`).Draw(t, "name")
			assert.ErrorIs(t, Validate(Candidate{Name: name, Email: "a@b.c"}, Rules{}), ErrEmptyName)
		})
	})
}

type senderFunc func(context.Context, mailer.Message) error

func (f senderFunc) Send(ctx context.Context, m mailer.Message) error { return f(ctx, m) }

func TestService_Register(t *testing.T) {
	at := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	store := &datastores.RegistrationsInmem{Now: func() time.Time { return at }}
	var sent []mailer.Message
	set := metrics.NewSet()
	s := &Service{
		Store:   store,
		Metrics: set,
		Mailer: senderFunc(func(_ context.Context, m mailer.Message) error {
			sent = append(sent, m)
			return nil
		}),
	}

	res, err := s.Register(context.Background(), Candidate{Name: " Ana Silva ", Email: "ana@x.com", Interest: "visitor"})
	require.NoError(t, err)
	assert.True(t, res.EmailSent)
	assert.Equal(t, "Ana Silva", res.Registration.Name)
	assert.Equal(t, datastores.InterestVisitor, res.Registration.Interest)
	assert.True(t, at.Equal(res.Registration.Timestamp))

	rs, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, res.Registration.ID, rs[0].ID)

	require.Len(t, sent, 1)
	assert.Equal(t, "ana@x.com", sent[0].To)
	assert.Equal(t, uint64(1), set.GetOrCreateCounter(`registrations_created_total`).Get())
}

func TestService_RegisterInvalid(t *testing.T) {
	store := new(datastores.RegistrationsInmem)
	s := &Service{Store: store}

	_, err := s.Register(context.Background(), Candidate{Name: "Ana", Email: "nope"})
	require.ErrorIs(t, err, ErrInvalidEmailFormat)

	rs, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestService_RegisterKeepsRecordWhenMailFails(t *testing.T) {
	store := new(datastores.RegistrationsInmem)
	s := &Service{
		Store: store,
		Mailer: senderFunc(func(context.Context, mailer.Message) error {
			return errors.New("smtp down")
		}),
	}

	res, err := s.Register(context.Background(), Candidate{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	assert.False(t, res.EmailSent)

	rs, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, rs, 1)
}
