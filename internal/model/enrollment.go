package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
)

type Enrollment struct {
	ID        int64            `json:"id"`
	CourseID  int64            `json:"course_id"`
	StudentID int64            `json:"student_id"`
	Status    EnrollmentStatus `json:"status"`
	CreatedBy int64            `json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`

	// Convenience fields populated on reads with joins, not stored.
	Course  *Course `json:"course,omitempty"`
	Student *User   `json:"student,omitempty"`
}
