package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "signboard.log")
	log, err := New(path, "debug")
	require.NoError(t, err)

	log.Debug("range parsed")
	log.Info("refresh complete")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	require.Equal(t, "refresh complete", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "signboard", entry["logger"])
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signboard.log")
	log, err := New(path, "")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hidden")
	require.Contains(t, string(raw), "shown")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("", "info")
	require.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.ErrorContains(t, err, "log level")
}
