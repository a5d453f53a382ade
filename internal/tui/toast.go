package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxVisibleToasts caps how many notifications render at once.
const maxVisibleToasts = 3

// toast is a transient success message.
type toast struct {
	id   int
	text string
}

// toastExpiredMsg removes the toast with the given id.
type toastExpiredMsg struct {
	id int
}

// toasts is the notification stack, oldest first.
type toasts struct {
	next  int
	items []toast
	ttl   time.Duration
}

// push adds a notification and returns the command that expires it.
func (t *toasts) push(text string) tea.Cmd {
	t.next++
	id := t.next
	t.items = append(t.items, toast{id: id, text: text})
	return tea.Tick(t.ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// expire drops the toast with the given id.
func (t *toasts) expire(id int) {
	kept := t.items[:0]
	for _, it := range t.items {
		if it.id != id {
			kept = append(kept, it)
		}
	}
	t.items = kept
}

// visible returns the newest toasts, newest first.
func (t *toasts) visible() []toast {
	n := len(t.items)
	if n > maxVisibleToasts {
		n = maxVisibleToasts
	}
	result := make([]toast, 0, n)
	for i := len(t.items) - 1; i >= len(t.items)-n; i-- {
		result = append(result, t.items[i])
	}
	return result
}
