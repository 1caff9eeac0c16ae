package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/hackathon-signup/csvexport"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)

	e, err := s.Exporter()
	require.NoError(t, err)
	assert.Equal(t, csvexport.PtBR, e.Locale)
	assert.Equal(t, "America/Sao_Paulo", e.Location.String())
}

func TestLoadFile(t *testing.T) {
	path := write(t, "event.yaml", "capacity: 120\nlocale: en-US\nrequire_interest: true\n")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, s.Capacity)
	assert.Equal(t, "en-US", s.Locale)
	assert.True(t, s.RequireInterest)
	assert.Equal(t, Defaults().Title, s.Title)
	assert.Equal(t, Defaults().TimeZone, s.TimeZone)
}

func TestLoadErrors(t *testing.T) {
	for name, content := range map[string]string{
		"capacity": "capacity: 0\n",
		"locale":   "locale: fr-FR\n",
		"timezone": "time_zone: Mars/Olympus\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(write(t, "event.yaml", content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
