package domain

import (
	"slices"
	"strings"
)

// Status identifies the lane a task sits in.
type Status string

// Status values, in board order.
const (
	StatusIncompleted Status = "incompleted"
	StatusOngoing     Status = "ongoing"
	StatusCompleted   Status = "completed"
)

// validStatuses stores all supported status values.
var validStatuses = []Status{StatusIncompleted, StatusOngoing, StatusCompleted}

// Valid reports whether the status is one of the board's column keys.
func (s Status) Valid() bool {
	return slices.Contains(validStatuses, s)
}

// ParseStatus normalizes raw text into a known status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Column represents one fixed status lane of the board.
type Column struct {
	Key   Status
	Label string
}

// columns is immutable; Columns hands out copies.
var columns = [...]Column{
	{Key: StatusIncompleted, Label: "Incompleted"},
	{Key: StatusOngoing, Label: "Ongoing"},
	{Key: StatusCompleted, Label: "Completed"},
}

// ColumnCount is the number of lanes on the board.
const ColumnCount = len(columns)

// Columns returns the board lanes in display order.
func Columns() []Column {
	return slices.Clone(columns[:])
}

// ColumnAt returns the lane at index, or false when the index is off the board.
func ColumnAt(index int) (Column, bool) {
	if index < 0 || index >= ColumnCount {
		return Column{}, false
	}
	return columns[index], true
}

// ColumnIndex returns the lane index for a status, or -1.
func ColumnIndex(status Status) int {
	for idx, col := range columns {
		if col.Key == status {
			return idx
		}
	}
	return -1
}
