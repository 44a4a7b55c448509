package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Title string
	Date  time.Time
}

func docTitle(d doc) string { return d.Title }

func docDate(d doc) time.Time { return d.Date }

func TestMatchTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		query string
		want  bool
	}{
		{"single token match", "Edital de Licitação 2024", "Edital", true},
		{"all tokens must match", "Edital de Licitação 2024", "Edital 2024", true},
		{"one missing token fails", "Edital de Licitação 2024", "Edital 2023", false},
		{"case sensitive", "Edital de Licitação", "edital", false},
		{"empty query matches everything", "qualquer coisa", "", true},
		{"substring inside a word", "Licitação", "cita", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchTitle(tt.title, tt.query))
		})
	}
}

func TestMatchTitle_NormalizesNFC(t *testing.T) {
	// "ção" with a decomposed c-cedilla and tilde must still match the
	// composed form typed into the search box.
	decomposed := "Licitação"
	assert.True(t, MatchTitle(decomposed, "Licitação"))
}

func TestFilterByTitle(t *testing.T) {
	items := []doc{
		{Title: "Edital de Licitação 01"},
		{Title: "Pregão Eletrônico 02"},
		{Title: "Edital de Pregão 03"},
	}

	got := FilterByTitle(items, docTitle, "Pregão")
	require.Len(t, got, 2)
	assert.Equal(t, "Pregão Eletrônico 02", got[0].Title)
	assert.Equal(t, "Edital de Pregão 03", got[1].Title)
}

func TestFilterByTitle_EmptyQueryRestoresAll(t *testing.T) {
	items := []doc{{Title: "a"}, {Title: "b"}}

	got := FilterByTitle(items, docTitle, "   ")
	assert.Len(t, got, 2)

	// The result is a fresh slice, not the input.
	got[0].Title = "mutated"
	assert.Equal(t, "a", items[0].Title)
}

func TestFilterByTitle_Idempotent(t *testing.T) {
	items := []doc{
		{Title: "Edital 01"},
		{Title: "Pregão 02"},
		{Title: "Edital 03"},
	}

	once := FilterByTitle(items, docTitle, "Edital")
	twice := FilterByTitle(once, docTitle, "Edital")
	assert.Equal(t, once, twice)
}

func TestFilterByDay_ExactCalendarDay(t *testing.T) {
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	items := []doc{
		{Title: "morning", Date: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local)},
		{Title: "last minute", Date: time.Date(2024, time.March, 1, 23, 59, 0, 0, time.Local)},
		{Title: "next day", Date: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.Local)},
	}

	got := FilterByDay(items, docDate, day)
	require.Len(t, got, 2)
	assert.Equal(t, "morning", got[0].Title)
	assert.Equal(t, "last minute", got[1].Title)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	b := time.Date(2024, time.March, 1, 23, 59, 59, 0, time.Local)
	c := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
