package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/controller"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/middleware"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type StudentTestController struct {
	assignmentService service.AssignmentService
	attemptService    service.AttemptService
	evaluationService service.EvaluationService
	reportService     service.ReportService
}

func NewStudentTestController(
	assignmentService service.AssignmentService,
	attemptService service.AttemptService,
	evaluationService service.EvaluationService,
	reportService service.ReportService,
) *StudentTestController {
	return &StudentTestController{
		assignmentService: assignmentService,
		attemptService:    attemptService,
		evaluationService: evaluationService,
		reportService:     reportService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}

// GetStatus godoc
// @Summary (Student) Get or create the attempt record for a test
// @Description First call assigns the test (if eligible) with the default deadline; later calls return the same row.
// @Tags Student - Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestStatusDTO
// @Failure 403 {object} dto.ErrorResponse "Not eligible"
// @Router /tests/{test_id}/status [get]
func (c *StudentTestController) GetStatus(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	identity := middleware.Identity(ctx)

	status, err := c.assignmentService.GetOrAssign(identity.ID, testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	var resp dto.TestStatusDTO
	copier.Copy(&resp, status)
	ctx.JSON(http.StatusOK, resp)
}

// StartOrResume godoc
// @Summary (Student) Start or resume a test attempt
// @Description Moves a pending attempt to ongoing and returns the test content without answer keys.
// @Tags Student - Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.StartTestResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not eligible"
// @Failure 410 {object} dto.ErrorResponse "Expired"
// @Router /tests/{test_id}/start [post]
func (c *StudentTestController) StartOrResume(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	identity := middleware.Identity(ctx)

	status, test, err := c.attemptService.StartOrResume(identity.ID, testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	var resp dto.StartTestResponseDTO
	copier.Copy(&resp.Attempt, status)
	resp.Test = toStudentTest(test)
	ctx.JSON(http.StatusOK, resp)
}

// SaveAnswer godoc
// @Summary (Student) Save or replace an answer for one question
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param answer body dto.SaveAnswerDTO true "Answer payload"
// @Success 200 {object} dto.AnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question/option"
// @Failure 409 {object} dto.ErrorResponse "Attempt not ongoing"
// @Failure 410 {object} dto.ErrorResponse "Expired"
// @Router /tests/{test_id}/answers [put]
func (c *StudentTestController) SaveAnswer(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	identity := middleware.Identity(ctx)

	var req dto.SaveAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	answer, err := c.attemptService.SaveAnswer(identity.ID, testID, req.QuestionID, req.SelectedOptionIDs, req.SubjectiveAnswer)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	resp := dto.AnswerResponseDTO{
		ID:                answer.ID,
		QuestionID:        answer.QuestionID,
		SelectedOptionIDs: answer.SelectedOptionIDs(),
		SubjectiveAnswer:  answer.SubjectiveAnswer,
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary (Student) Submit the attempt
// @Tags Student - Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestStatusDTO
// @Failure 409 {object} dto.ErrorResponse "Already submitted or not started"
// @Failure 410 {object} dto.ErrorResponse "Expired"
// @Router /tests/{test_id}/submit [post]
func (c *StudentTestController) Submit(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	identity := middleware.Identity(ctx)

	status, err := c.attemptService.Submit(identity.ID, testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	var resp dto.TestStatusDTO
	copier.Copy(&resp, status)
	ctx.JSON(http.StatusOK, resp)
}

// Evaluate godoc
// @Summary (Student) Trigger evaluation of a submitted attempt
// @Description Grader outages are reported in the payload with status "error_evaluating"; the call itself succeeds and may be retried.
// @Tags Student - Attempts
// @Produce json
// @Param attempt_id path int true "Attempt (TestStatus) ID"
// @Success 200 {object} dto.EvaluationResultDTO
// @Failure 409 {object} dto.ErrorResponse "Not completed"
// @Router /attempts/{attempt_id}/evaluate [post]
func (c *StudentTestController) Evaluate(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	result, err := c.evaluationService.Evaluate(ctx.Request.Context(), attemptID)
	if err != nil {
		// A grader failure is a payload-level outcome, not a transport error.
		if errors.Is(err, service.ErrGradingUnavailable) && result != nil {
			ctx.JSON(http.StatusOK, result)
			return
		}
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("Evaluate failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetReport godoc
// @Summary (Student) Full section-grouped report for an attempt
// @Tags Student - Reports
// @Produce json
// @Param attempt_id path int true "Attempt (TestStatus) ID"
// @Success 200 {object} dto.TestReportDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/report [get]
func (c *StudentTestController) GetReport(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	report, err := c.reportService.BuildReport(attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// GetSummary godoc
// @Summary (Student) Aggregate-only summary for quick polling
// @Tags Student - Reports
// @Produce json
// @Param attempt_id path int true "Attempt (TestStatus) ID"
// @Success 200 {object} dto.TestReportSummaryDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/summary [get]
func (c *StudentTestController) GetSummary(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	summary, err := c.reportService.BuildSummary(attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// toStudentTest strips answer keys from the content tree before it
// reaches a test taker.
func toStudentTest(test *model.Test) dto.StudentTestDTO {
	out := dto.StudentTestDTO{
		ID:              test.ID,
		Title:           test.Title,
		Description:     test.Description,
		DurationMinutes: test.DurationMinutes,
		TotalMarks:      test.TotalMarks,
	}
	for _, section := range test.Sections {
		sectionDTO := dto.StudentSectionDTO{
			ID:                    section.ID,
			Title:                 section.Title,
			QuestionMode:          section.QuestionMode,
			NegativeMarkingFactor: section.NegativeMarkingFactor,
			OrderInTest:           section.OrderInTest,
		}
		for _, question := range section.Questions {
			questionDTO := dto.StudentQuestionDTO{
				ID:             question.ID,
				Prompt:         question.Prompt,
				Marks:          question.Marks,
				IsSingleAnswer: question.IsSingleAnswer,
				OrderInSection: question.OrderInSection,
			}
			for _, option := range question.Options {
				questionDTO.Options = append(questionDTO.Options, dto.StudentOptionDTO{ID: option.ID, Text: option.Text})
			}
			sectionDTO.Questions = append(sectionDTO.Questions, questionDTO)
		}
		out.Sections = append(out.Sections, sectionDTO)
	}
	return out
}
