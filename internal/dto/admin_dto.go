package dto

import "time"

// OptionCreateDTO is one MCQ choice inside a question being authored.
type OptionCreateDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionCreateDTO struct {
	Prompt         string            `json:"prompt" binding:"required"`
	Marks          float64           `json:"marks" binding:"required,gt=0"`
	IsSingleAnswer bool              `json:"is_single_answer"`
	OrderInSection int               `json:"order_in_section" binding:"required,min=1"`
	Options        []OptionCreateDTO `json:"options" binding:"omitempty,dive"`
}

type SectionCreateDTO struct {
	Title                 string              `json:"title" binding:"required"`
	QuestionMode          string              `json:"question_mode" binding:"required,oneof=mcq sub"`
	NegativeMarkingFactor float64             `json:"negative_marking_factor" binding:"min=0"`
	OrderInTest           int                 `json:"order_in_test" binding:"required,min=1"`
	Questions             []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestCreateDTO is the full authoring payload: a test with its ordered
// sections, questions and options in one request.
type TestCreateDTO struct {
	Title                 string             `json:"title" binding:"required"`
	Description           string             `json:"description,omitempty"`
	DurationMinutes       int                `json:"duration_minutes" binding:"required,min=1"`
	Priority              int                `json:"priority"`
	NegativeMarkingFactor float64            `json:"negative_marking_factor" binding:"min=0"`
	Sections              []SectionCreateDTO `json:"sections" binding:"required,min=1,dive"`
}

type CourseCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
}

type AttachTestDTO struct {
	TestID        uint `json:"test_id" binding:"required"`
	OrderInCourse int  `json:"order_in_course"`
}

type EnrollStudentDTO struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// --- admin-facing responses (include correctness flags) ---

type OptionResponseDTO struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionResponseDTO struct {
	ID             uint                `json:"id"`
	SectionID      uint                `json:"section_id"`
	Prompt         string              `json:"prompt"`
	Marks          float64             `json:"marks"`
	IsSingleAnswer bool                `json:"is_single_answer"`
	OrderInSection int                 `json:"order_in_section"`
	Options        []OptionResponseDTO `json:"options,omitempty"`
}

type SectionResponseDTO struct {
	ID                    uint                  `json:"id"`
	TestID                uint                  `json:"test_id"`
	Title                 string                `json:"title"`
	QuestionMode          string                `json:"question_mode"`
	NegativeMarkingFactor float64               `json:"negative_marking_factor"`
	OrderInTest           int                   `json:"order_in_test"`
	Questions             []QuestionResponseDTO `json:"questions,omitempty"`
}

type TestResponseDTO struct {
	ID                    uint                 `json:"id"`
	Title                 string               `json:"title"`
	Description           string               `json:"description,omitempty"`
	DurationMinutes       int                  `json:"duration_minutes"`
	Priority              int                  `json:"priority"`
	TotalMarks            float64              `json:"total_marks"`
	NegativeMarkingFactor float64              `json:"negative_marking_factor"`
	Sections              []SectionResponseDTO `json:"sections,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
}

type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Priority        int       `json:"priority"`
	TotalMarks      float64   `json:"total_marks"`
	SectionCount    int       `json:"section_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type CourseResponseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
