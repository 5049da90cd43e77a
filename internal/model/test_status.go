package model

import (
	"time"

	"gorm.io/gorm"
)

// TestStatus lifecycle states.
const (
	StatusPending   = "pending"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// TestStatus is a student's attempt record for one test, unique per
// (student, test). It is the root of all attempt-scoped data: answers
// and the evaluation are destroyed with it.
type TestStatus struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	StudentID uint    `json:"student_id" gorm:"not null;uniqueIndex:idx_test_statuses_student_test"`
	TestID    uint    `json:"test_id" gorm:"not null;uniqueIndex:idx_test_statuses_student_test"`
	Test      Test    `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Status    string  `json:"status" gorm:"not null;default:'pending'"`
	AssignedAt time.Time `json:"assigned_at"`
	// Deadline is the last moment the student may start the test.
	Deadline  time.Time  `json:"deadline"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	// ValidTill is the attempt-local expiry: started_at + test duration.
	// Recomputed idempotently on resume, never extended.
	ValidTill   *time.Time     `json:"valid_till,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:TestStatusID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Evaluation  *Evaluation    `json:"evaluation,omitempty" gorm:"foreignKey:TestStatusID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
