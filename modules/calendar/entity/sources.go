package entity

import (
	"time"

	coreEntity "academy-api/core/entity"

	"github.com/google/uuid"
)

// Native row shapes of the event-producing domains. The aggregation engine
// reads these; it never writes them. Each adapter owns the mapping from its
// native status vocabulary to EventStatus.

// LiveSession is a scheduled live class session of a course.
type LiveSession struct {
	coreEntity.BaseEntity
	TenantID   uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	CourseID   uuid.UUID  `db:"course_id" json:"course_id"`
	CourseName string     `db:"course_name" json:"course_name"`
	Title      string     `db:"title" json:"title"`
	Topic      *string    `db:"topic" json:"topic,omitempty"`
	RoomLink   *string    `db:"room_link" json:"room_link,omitempty"`
	StartAt    time.Time  `db:"start_at" json:"start_at"`
	EndAt      time.Time  `db:"end_at" json:"end_at"`
	Status     string     `db:"status" json:"status"` // scheduled | live | ended | cancelled
	EndedAt    *time.Time `db:"ended_at" json:"ended_at,omitempty"`
}

// CourseDeadline is a due instant of a recorded-course milestone
// (assignment, quiz or lesson completion target) for one student.
type CourseDeadline struct {
	coreEntity.BaseEntity
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	CourseID    uuid.UUID  `db:"course_id" json:"course_id"`
	CourseName  string     `db:"course_name" json:"course_name"`
	ItemTitle   string     `db:"item_title" json:"item_title"`
	ItemKind    string     `db:"item_kind" json:"item_kind"` // assignment | quiz | lesson
	DueAt       time.Time  `db:"due_at" json:"due_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// TutoringSession is a booked one-on-one tutoring slot.
type TutoringSession struct {
	coreEntity.BaseEntity
	TenantID    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	StudentID   uuid.UUID `db:"student_id" json:"student_id"`
	TutorID     uuid.UUID `db:"tutor_id" json:"tutor_id"`
	TutorName   string    `db:"tutor_name" json:"tutor_name"`
	Subject     string    `db:"subject" json:"subject"`
	MeetingLink *string   `db:"meeting_link" json:"meeting_link,omitempty"`
	StartAt     time.Time `db:"start_at" json:"start_at"`
	EndAt       time.Time `db:"end_at" json:"end_at"`
	Status      string    `db:"status" json:"status"` // booked | in_progress | done | cancelled | no_show
}
