package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer holds one row per (TestStatus, Question), created on the first
// save and updated in place thereafter. Marks are only written by the
// evaluation engine, never by answer saves.
type Answer struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	TestStatusID uint     `json:"test_status_id" gorm:"not null;uniqueIndex:idx_answers_status_question"`
	QuestionID   uint     `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_status_question"`
	Question     Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	// SelectedOptions is the full MCQ selection; saves replace it wholesale.
	SelectedOptions []Option `json:"selected_options,omitempty" gorm:"many2many:answer_selected_options"`
	// SubjectiveAnswer is nil when the student has not answered; empty or
	// whitespace-only submissions are normalized to nil, never stored as "".
	SubjectiveAnswer *string        `json:"subjective_answer,omitempty" gorm:"type:text"`
	MarksObtained    *float64       `json:"marks_obtained,omitempty"`
	Remarks          string         `json:"remarks,omitempty" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// SelectedOptionIDs returns the ids of the currently selected options.
func (a *Answer) SelectedOptionIDs() []uint {
	var ids []uint
	for _, o := range a.SelectedOptions {
		ids = append(ids, o.ID)
	}
	return ids
}
