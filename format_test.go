package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable_AlignsColumns(t *testing.T) {
	var buf bytes.Buffer

	printTable(&buf, []string{"ID", "TITLE"}, [][]string{
		{"abc123", "Obras na avenida"},
		{"d4", "Saúde"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], "ID      "))
	assert.True(t, strings.HasPrefix(lines[1], "abc123  "))
	assert.True(t, strings.HasPrefix(lines[2], "d4      "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-te", truncate("exactly-te", 10))
	assert.Equal(t, "long titl…", truncate("long title here", 10))

	// Rune-aware: accented titles must not be cut mid-rune.
	assert.Equal(t, "Notícia s…", truncate("Notícia sobre obras", 10))
}

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), got)

	_, err = parseDateFlag("01/03/2024")
	require.Error(t, err)

	_, err = parseDateFlag("")
	require.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", formatDate(time.Time{}))
	assert.Equal(t, "01/03/2024",
		formatDate(time.Date(2024, time.March, 1, 15, 30, 0, 0, time.Local)))
}

func TestPrintJSON_Indented(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printJSON(&buf, map[string]int{"count": 13}))
	assert.Equal(t, "{\n  \"count\": 13\n}\n", buf.String())
}
