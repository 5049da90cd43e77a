package dto

// Evaluation outcome statuses as reported to clients.
const (
	EvaluationStatusEvaluated        = "evaluated"
	EvaluationStatusAlreadyEvaluated = "already_evaluated"
	EvaluationStatusError            = "error_evaluating"
)

// EvaluationResultDTO is the payload of an evaluate call. A grader outage
// is reported here (status "error_evaluating", retryable) rather than as
// a transport failure.
type EvaluationResultDTO struct {
	TestStatusID  uint    `json:"test_status_id"`
	Status        string  `json:"status"`
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
	Retryable     bool    `json:"retryable"`
	Remarks       string  `json:"remarks,omitempty"`
}

// --- detail report (per question, per option) ---

type ReportOptionDTO struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
	IsSelected bool   `json:"is_selected"`
}

type ReportQuestionDTO struct {
	ID               uint              `json:"id"`
	Prompt           string            `json:"prompt"`
	Marks            float64           `json:"marks"`
	MarksObtained    *float64          `json:"marks_obtained,omitempty"`
	SubjectiveAnswer *string           `json:"subjective_answer,omitempty"`
	Remarks          string            `json:"remarks,omitempty"`
	Options          []ReportOptionDTO `json:"options,omitempty"`
}

type ReportSectionDTO struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	QuestionMode  string              `json:"question_mode"`
	OrderInTest   int                 `json:"order_in_test"`
	TotalMarks    float64             `json:"total_marks"`
	ObtainedMarks float64             `json:"obtained_marks"`
	Questions     []ReportQuestionDTO `json:"questions"`
}

type TestReportDTO struct {
	TestStatusID  uint               `json:"test_status_id"`
	TestID        uint               `json:"test_id"`
	TestTitle     string             `json:"test_title"`
	Status        string             `json:"status"`
	Evaluated     bool               `json:"evaluated"`
	TotalMarks    float64            `json:"total_marks"`
	ObtainedMarks float64            `json:"obtained_marks"`
	Sections      []ReportSectionDTO `json:"sections"`
}

// --- aggregate-only summary for quick polling ---

type SectionAggregateDTO struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	QuestionMode  string  `json:"question_mode"`
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
}

type TestReportSummaryDTO struct {
	TestStatusID  uint                  `json:"test_status_id"`
	TestID        uint                  `json:"test_id"`
	Status        string                `json:"status"`
	Evaluated     bool                  `json:"evaluated"`
	TotalMarks    float64               `json:"total_marks"`
	ObtainedMarks float64               `json:"obtained_marks"`
	Sections      []SectionAggregateDTO `json:"sections"`
}
