package models

import "time"

// TrainingStatus represents the lifecycle of a training event.
type TrainingStatus string

// Possible training statuses.
const (
	TrainingStatusActive    TrainingStatus = "Active"
	TrainingStatusCancelled TrainingStatus = "Cancelled"
	TrainingStatusCompleted TrainingStatus = "Completed"
)

// TrainingEvent is a scheduled activity with a fixed seat capacity. The
// enrolled counter is denormalized; it must always equal the number of
// non-cancelled enrollments referencing the event.
type TrainingEvent struct {
	ID        string         `db:"id" json:"id"`
	Title     string         `db:"title" json:"title"`
	StartDate time.Time      `db:"start_date" json:"start_date"`
	EndDate   time.Time      `db:"end_date" json:"end_date"`
	Trainer   string         `db:"trainer" json:"trainer"`
	Location  string         `db:"location" json:"location"`
	Latitude  *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64       `db:"longitude" json:"longitude,omitempty"`
	Capacity  int            `db:"capacity" json:"capacity"`
	Enrolled  int            `db:"enrolled" json:"enrolled"`
	Status    TrainingStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
