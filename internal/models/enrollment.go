package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. Cancellation is not reachable through the
// current API but the status field exists for extension.
const (
	EnrollmentStatusActive    EnrollmentStatus = "Active"
	EnrollmentStatusCancelled EnrollmentStatus = "Cancelled"
)

// Enrollment ties a user to a training event. At most one non-cancelled
// enrollment may exist per (user, training) pair.
type Enrollment struct {
	ID             string           `db:"id" json:"id"`
	UserID         string           `db:"user_id" json:"user_id"`
	TrainingID     string           `db:"training_id" json:"training_id"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	EnrollmentDate time.Time        `db:"enrollment_date" json:"enrollment_date"`
}

// UserEnrollment enriches a training event with the caller's enrollment date.
type UserEnrollment struct {
	TrainingEvent
	EnrollmentDate time.Time `db:"enrollment_date" json:"enrollment_date"`
}
