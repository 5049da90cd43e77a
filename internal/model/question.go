package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	SectionID uint        `json:"section_id" gorm:"not null;index"`
	Section   TestSection `json:"-" gorm:"foreignKey:SectionID"`
	Prompt    string      `json:"prompt" gorm:"type:text;not null"`
	Marks     float64     `json:"marks" gorm:"not null"`
	// IsSingleAnswer restricts an MCQ question to at most one selected option.
	IsSingleAnswer bool           `json:"is_single_answer" gorm:"default:false"`
	OrderInSection int            `json:"order_in_section" gorm:"not null"`
	Options        []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuestionMode reports the mode of the parent section. The Section
// association must be loaded; the mode is intentionally not duplicated
// as a stored column on the question row.
func (q *Question) QuestionMode() string {
	return q.Section.QuestionMode
}

// CorrectOptionIDs returns the ids of the correct options. Requires Options loaded.
func (q *Question) CorrectOptionIDs() []uint {
	var ids []uint
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

type Option struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool           `json:"is_correct" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
