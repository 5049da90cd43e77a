package model

import (
	"time"

	"gorm.io/gorm"
)

// Evaluation is the one-to-one scoring record for a completed TestStatus.
// A clean row (IsErrorEvaluating false) is final: evaluation is run-once
// and never silently recomputed, since marks may have been adjusted by a
// counsellor afterwards.
type Evaluation struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	TestStatusID uint    `json:"test_status_id" gorm:"not null;uniqueIndex"`
	TotalMarks   float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
	// IsErrorEvaluating is the sticky failure flag: set when subjective
	// grading fails so a retry re-runs only the subjective batch.
	IsErrorEvaluating bool           `json:"is_error_evaluating" gorm:"not null;default:false"`
	Remarks           string         `json:"remarks,omitempty" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
