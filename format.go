package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// statusf prints a status message to stderr unless quiet mode is set.
func statusf(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
// Piped output gets tab-separated rows instead of padded columns so it
// stays friendly to cut/awk.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printItems renders a listing: JSON when --json is set, aligned columns on
// a terminal, tab-separated otherwise.
func printItems(v any, headers []string, rows [][]string) error {
	if flagJSON {
		return printJSON(os.Stdout, v)
	}

	if stdoutIsTerminal() {
		printTable(os.Stdout, headers, rows)
		return nil
	}

	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}

	return nil
}

// printJSON writes indented JSON to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// formatDate returns the compact display form of a record date.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Local().Format("02/01/2006")
}

// truncate shortens a cell to max runes for table display.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}

// printTable writes aligned columns to the given writer.
// headers and each row must have the same length.
func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(w, headers, widths)

	for _, row := range rows {
		printRow(w, row, widths)
	}
}

// printRow writes a single padded row.
func printRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}

	fmt.Fprintln(w, strings.Join(parts, "  "))
}

// parseDateFlag parses the YYYY-MM-DD form used by date flags.
func parseDateFlag(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}

	return t, nil
}

// openUpload opens a file for a multipart upload. The caller closes it.
func openUpload(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return f, nil
}

// mutationFeedback prints the server's confirmation message.
func mutationFeedback(message, id string) {
	if id != "" {
		statusf("%s (id %s)\n", message, id)
		return
	}

	statusf("%s\n", message)
}
