package model

import (
	"time"

	"gorm.io/gorm"
)

// Section question modes. Every question in a section shares the
// section's mode; questions do not store a type of their own.
const (
	ModeMCQ        = "mcq"
	ModeSubjective = "sub"
)

type Test struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title" gorm:"not null;uniqueIndex"`
	Description string `json:"description,omitempty"`
	// DurationMinutes is the per-attempt window once a student starts.
	DurationMinutes int `json:"duration_minutes" gorm:"not null"`
	Priority        int `json:"priority" gorm:"default:0"`
	// TotalMarks is derived from the question tree at authoring time and cached.
	TotalMarks float64 `json:"total_marks"`
	// NegativeMarkingFactor is the authoring default offered for new sections;
	// each section carries its own effective factor.
	NegativeMarkingFactor float64        `json:"negative_marking_factor" gorm:"default:0"`
	Sections              []TestSection  `json:"sections,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

type TestSection struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	TestID uint   `json:"test_id" gorm:"not null;index"`
	Title  string `json:"title" gorm:"not null"`
	// QuestionMode is "mcq" or "sub" and applies to every question in the section.
	QuestionMode          string         `json:"question_mode" gorm:"not null"`
	NegativeMarkingFactor float64        `json:"negative_marking_factor" gorm:"default:0"`
	OrderInTest           int            `json:"order_in_test" gorm:"not null"`
	Questions             []Question     `json:"questions,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}
