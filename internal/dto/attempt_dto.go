package dto

import "time"

// SaveAnswerDTO carries one answer save. Either the MCQ selection or the
// subjective text is set, matching the question's section mode.
type SaveAnswerDTO struct {
	QuestionID        uint    `json:"question_id" binding:"required"`
	SelectedOptionIDs []uint  `json:"selected_option_ids"`
	SubjectiveAnswer  *string `json:"subjective_answer"`
}

type TestStatusDTO struct {
	ID          uint       `json:"id"`
	StudentID   uint       `json:"student_id"`
	TestID      uint       `json:"test_id"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	Deadline    time.Time  `json:"deadline"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	ValidTill   *time.Time `json:"valid_till,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// --- student-facing test content (correctness flags stripped) ---

type StudentOptionDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type StudentQuestionDTO struct {
	ID             uint               `json:"id"`
	Prompt         string             `json:"prompt"`
	Marks          float64            `json:"marks"`
	IsSingleAnswer bool               `json:"is_single_answer"`
	OrderInSection int                `json:"order_in_section"`
	Options        []StudentOptionDTO `json:"options,omitempty"`
}

type StudentSectionDTO struct {
	ID                    uint                 `json:"id"`
	Title                 string               `json:"title"`
	QuestionMode          string               `json:"question_mode"`
	NegativeMarkingFactor float64              `json:"negative_marking_factor"`
	OrderInTest           int                  `json:"order_in_test"`
	Questions             []StudentQuestionDTO `json:"questions"`
}

type StudentTestDTO struct {
	ID              uint                `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	DurationMinutes int                 `json:"duration_minutes"`
	TotalMarks      float64             `json:"total_marks"`
	Sections        []StudentSectionDTO `json:"sections"`
}

type StartTestResponseDTO struct {
	Attempt TestStatusDTO  `json:"attempt"`
	Test    StudentTestDTO `json:"test"`
}

type AnswerResponseDTO struct {
	ID                uint    `json:"id"`
	QuestionID        uint    `json:"question_id"`
	SelectedOptionIDs []uint  `json:"selected_option_ids,omitempty"`
	SubjectiveAnswer  *string `json:"subjective_answer,omitempty"`
}
