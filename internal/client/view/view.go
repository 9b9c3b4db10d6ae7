// Package view derives what the presentation layer shows from the
// authoritative task collection. Everything here is pure.
package view

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// Filter selects which tasks are visible. The zero value is All.
type Filter int

const (
	All Filter = iota
	Active
	Completed
)

func (f Filter) String() string {
	switch f {
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return "all"
	}
}

// ParseFilter accepts "all", "active" or "completed" (case-insensitive).
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active":
		return Active, nil
	case "completed", "done":
		return Completed, nil
	}
	return All, fmt.Errorf("%w: unknown filter %q", common.ErrValidation, s)
}

// Visible returns the tasks matching f, in collection order.
func Visible(tasks []models.Task, f Filter) []models.Task {
	if f == All {
		return tasks
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == (f == Completed) {
			out = append(out, t)
		}
	}
	return out
}

func ActiveCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func HasCompleted(tasks []models.Task) bool {
	for _, t := range tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

// ItemsLeft renders the footer counter.
func ItemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}
