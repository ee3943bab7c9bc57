package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is a to-do item on a doctor's list. DueDate is either an RFC 3339
// instant or a calendar day (YYYY-MM-DD).
type Task struct {
	ID          uuid.UUID  `json:"id"`
	DoctorID    *uuid.UUID `json:"doctor_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"due_date"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ParseDue parses a due date. A calendar day is taken as midnight at the
// start of that day in loc.
func ParseDue(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date %q is neither RFC 3339 nor YYYY-MM-DD", s)
	}
	return t, nil
}

// IsOverdue reports whether the task is open and its due date lies before
// ref. Unparseable due dates are never overdue.
func (t *Task) IsOverdue(ref time.Time) bool {
	if t.Completed {
		return false
	}
	due, err := ParseDue(t.DueDate, ref.Location())
	if err != nil {
		return false
	}
	return due.Before(ref)
}

type Update struct {
	DoctorID    *uuid.UUID `json:"doctor_id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *string    `json:"due_date"`
	Completed   *bool      `json:"completed"`
}

func (u *Update) apply(t *Task) {
	if u.DoctorID != nil {
		t.DoctorID = u.DoctorID
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
}

// Stats summarizes a task list at a reference instant.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}
