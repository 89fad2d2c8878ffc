package models

import "time"

// TaskStatus defines the possible statuses for a maintenance task.
type TaskStatus string

const (
	StatusAwaitingApproval TaskStatus = "Awaiting Approval"
	StatusPending          TaskStatus = "Pending"
	StatusAssigned         TaskStatus = "Assigned"
	StatusInProgress       TaskStatus = "In Progress"
	StatusCompleted        TaskStatus = "Completed"
)

type WorkNature string

const (
	NatureRepairWork WorkNature = "Repair Work"
	NatureNewWork    WorkNature = "New Work"
)

// HistoryEntry is one immutable record in a task's status audit log.
// Entries are only ever appended, never edited or removed.
type HistoryEntry struct {
	Status    TaskStatus `json:"status"`
	ChangedBy *int64     `json:"changedBy"` // nil for anonymous public submissions
	ChangedAt time.Time  `json:"changedAt"`
	Remarks   string     `json:"remarks,omitempty"`
}

// Task represents a maintenance request and its embedded audit history.
type Task struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	WorkTypeID      int64          `json:"workType"`
	Area            string         `json:"area,omitempty"`
	Status          TaskStatus     `json:"status"`
	AssignedTo      string         `json:"assignedTo,omitempty"` // free-text technician name
	Materials       []string       `json:"materials"`
	Manpower        string         `json:"manpower,omitempty"`
	EstimatedTime   string         `json:"estimatedTime,omitempty"`
	ActualTime      string         `json:"actualTime,omitempty"`
	Images          []string       `json:"images"` // object-storage URLs, opaque to the API
	CreatedBy       *int64         `json:"createdBy"`
	SubmittedByName string         `json:"submittedByName,omitempty"`
	WorkNature      WorkNature     `json:"workNature,omitempty"`
	Tags            []string       `json:"tags"`
	History         []HistoryEntry `json:"history"`
	Version         int64          `json:"version"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// TaskFilter defines the available parameters for filtering tasks.
// Nil/empty fields mean "no constraint"; all set fields are ANDed.
type TaskFilter struct {
	Status     *TaskStatus
	WorkTypeID *int64
	Area       *string
	Tags       []string // match-any against the task's tag set
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TaskSummary is the aggregated dashboard view of the task set.
type TaskSummary struct {
	Total      int                `json:"total"`
	ByStatus   map[TaskStatus]int `json:"byStatus"`
	ByWorkType map[int64]int      `json:"byWorkType"`
}
