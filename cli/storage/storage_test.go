package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/hackathon-signup/datastores"
)

func TestOpen(t *testing.T) {
	for _, store := range []string{"memory", "file", "SQLite"} {
		t.Run(store, func(t *testing.T) {
			ctx := context.Background()
			s, err := Open(&StoreOptions{Store: store, StorePath: filepath.Join(t.TempDir(), "data", "store")})
			require.NoError(t, err)
			defer s.Close()

			_, err = s.Registrations.Append(ctx, &datastores.Registration{Name: "Ana", Email: "ana@x.com"})
			require.NoError(t, err)
			rs, err := s.Registrations.LoadAll(ctx)
			require.NoError(t, err)
			assert.Len(t, rs, 1)

			require.NoError(t, s.EmailLog.Append(ctx, &datastores.EmailLog{To: "ana@x.com", Status: datastores.EmailSent}))
			logs, err := s.EmailLog.List(ctx)
			require.NoError(t, err)
			assert.Len(t, logs, 1)
		})
	}
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open(&StoreOptions{Store: "postgres"})
	assert.Error(t, err)
}
