package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]any{"id": 1}))
	assert.Equal(t, "{\n  \"id\": 1\n}\n", buf.String())
}

func TestRawIDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RawIDs(&buf, []int64{2, 5, 7}))
	assert.Equal(t, "2 5 7\n", buf.String())

	buf.Reset()
	require.NoError(t, RawIDs(&buf, nil))
	assert.Equal(t, "\n", buf.String())
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	records := []map[string]any{
		{"id": int64(2), "name": "Dirty", "active": true},
		{"id": int64(5), "name": "Clint", "active": false},
	}
	require.NoError(t, CSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "active,id,name", lines[0], "header is sorted for stability")
	assert.Equal(t, "true,2,Dirty", lines[1])
	assert.Equal(t, "false,5,Clint", lines[2])
}

func TestCSVCompositeValues(t *testing.T) {
	var buf bytes.Buffer
	records := []map[string]any{
		{"partner_id": []any{float64(7), "Acme"}, "note": nil},
	}
	require.NoError(t, CSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "note,partner_id", lines[0])
	assert.Contains(t, lines[1], `[7,""Acme""]`)
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestNewLogger(t *testing.T) {
	for _, name := range LevelNames() {
		logger, err := NewLogger(name)
		require.NoError(t, err, name)
		require.NotNil(t, logger)
	}

	logger, err := NewLogger("debug")
	require.NoError(t, err, "level names are case-insensitive")
	require.NotNil(t, logger)

	_, err = NewLogger("LOUD")
	assert.Error(t, err)
}
