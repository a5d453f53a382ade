// Package output provides plain-text formatters for the non-interactive commands.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasktable/internal/store"
	"tasktable/internal/task"
)

// FormatHeader writes the column header of a task listing.
// Format: "{ID:>4}  {STATUS:<11}  TITLE\n"
func FormatHeader(w io.Writer) {
	fmt.Fprintf(w, "%4s  %-11s  %s\n", "ID", "STATUS", "TITLE")
}

// FormatTask writes one task line.
// Format: "{ID:>4}  {STATUS:<11}  {TITLE}[ - {DESCRIPTION}]\n"
func FormatTask(w io.Writer, t task.Task) {
	line := normalizeText(t.Title)
	if line == "" {
		line = "(untitled)"
	}
	if desc := normalizeText(t.Description); desc != "" {
		line += " - " + desc
	}
	fmt.Fprintf(w, "%4d  %-11s  %s\n", t.ID, t.Status, line)
}

// FormatPageFooter writes the page position line.
func FormatPageFooter(w io.Writer, p store.Page) {
	noun := "tasks"
	if p.Total == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "page %d/%d (%d %s)\n", p.Number, p.Count, p.Total, noun)
}

// FormatCounts writes the status counters in display order.
// Format: "To Do: N  In Progress: N  Done: N\n"
func FormatCounts(w io.Writer, c store.Counts) {
	parts := make([]string, 0, len(task.Statuses))
	for _, st := range task.Statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", st, c[st]))
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

// normalizeText flattens newlines and trims surrounding space.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
