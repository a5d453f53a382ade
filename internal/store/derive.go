package store

import (
	"fmt"
	"strings"

	"tasktable/internal/task"
)

// DefaultPageSize is the number of rows per grid page.
const DefaultPageSize = 20

// FilterAll selects every status.
const FilterAll = "All"

// FilterStatus is either FilterAll or one task.Status.
type FilterStatus string

// FilterOptions lists the filter values in the order the UI cycles them.
var FilterOptions = []FilterStatus{
	FilterAll,
	FilterStatus(task.StatusToDo),
	FilterStatus(task.StatusInProgress),
	FilterStatus(task.StatusDone),
}

// ParseFilter resolves "all" or a status name to a FilterStatus.
// An empty string means all.
func ParseFilter(s string) (FilterStatus, error) {
	if strings.TrimSpace(s) == "" || strings.EqualFold(strings.TrimSpace(s), FilterAll) {
		return FilterAll, nil
	}
	st, err := task.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("invalid status filter: %s", s)
	}
	return FilterStatus(st), nil
}

// Next returns the filter after f in cycle order.
func (f FilterStatus) Next() FilterStatus {
	for i, o := range FilterOptions {
		if o == f {
			return FilterOptions[(i+1)%len(FilterOptions)]
		}
	}
	return FilterAll
}

// Query narrows the task list to what the grid shows.
type Query struct {
	Status FilterStatus
	Search string
}

// Matches reports whether t passes both the status filter and the search.
// Search is a case-insensitive substring match on title or description.
func (q Query) Matches(t task.Task) bool {
	if q.Status != "" && q.Status != FilterAll && task.Status(q.Status) != t.Status {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// Filter returns the tasks matching q, preserving order.
func Filter(tasks []task.Task, q Query) []task.Task {
	result := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// Counts holds the number of tasks per status.
type Counts map[task.Status]int

// Total returns the sum over all statuses.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Count tallies tasks by status. Every status in task.Statuses is present.
func Count(tasks []task.Task) Counts {
	c := make(Counts, len(task.Statuses))
	for _, st := range task.Statuses {
		c[st] = 0
	}
	for _, t := range tasks {
		c[t.Status]++
	}
	return c
}

// Page is one page of a task slice.
type Page struct {
	Tasks  []task.Task
	Number int // 1-based, after clamping
	Count  int // total pages, at least 1
	Total  int // tasks across all pages
}

// Paginate returns page number page of tasks with the given size.
// The page number is clamped into [1, Count]. A size < 1 uses DefaultPageSize.
func Paginate(tasks []task.Task, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	count := (len(tasks) + size - 1) / size
	if count < 1 {
		count = 1
	}
	if page < 1 {
		page = 1
	}
	if page > count {
		page = count
	}

	start := (page - 1) * size
	end := start + size
	if end > len(tasks) {
		end = len(tasks)
	}

	return Page{
		Tasks:  tasks[start:end],
		Number: page,
		Count:  count,
		Total:  len(tasks),
	}
}
