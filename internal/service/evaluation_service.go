package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GradGlobe-org/admin-panel-sub000/config"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EvaluationService scores completed attempts. Evaluation is run-once: a
// clean Evaluation row is returned as-is on repeat calls, since marks may
// have been adjusted by a counsellor and must not be overwritten. A failed
// subjective pass leaves the sticky is_error_evaluating flag so a retry
// re-runs only the external batch, keeping the already-persisted MCQ marks.
type EvaluationService interface {
	Evaluate(ctx context.Context, testStatusID uint) (*dto.EvaluationResultDTO, error)
}

type evaluationService struct {
	statusRepo repository.TestStatusRepository
	answerRepo repository.AnswerRepository
	evalRepo   repository.EvaluationRepository
	grader     SubjectiveGrader
	notifier   Notifier
	timeout    time.Duration
}

func NewEvaluationService(
	cfg *config.Config,
	statusRepo repository.TestStatusRepository,
	answerRepo repository.AnswerRepository,
	evalRepo repository.EvaluationRepository,
	grader SubjectiveGrader,
	notifier Notifier,
) EvaluationService {
	return &evaluationService{
		statusRepo: statusRepo,
		answerRepo: answerRepo,
		evalRepo:   evalRepo,
		grader:     grader,
		notifier:   notifier,
		timeout:    time.Duration(cfg.Exam.GraderTimeoutSeconds) * time.Second,
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, testStatusID uint) (*dto.EvaluationResultDTO, error) {
	status, err := s.statusRepo.FindByIDWithDetails(testStatusID)
	if err != nil {
		return nil, fmt.Errorf("test attempt not found with ID %d: %w", testStatusID, err)
	}
	if status.Status != model.StatusCompleted {
		return nil, ErrNotCompleted
	}

	evaluation, err := s.evalRepo.FindByTestStatusID(testStatusID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up evaluation: %w", err)
	}
	if evaluation != nil && !evaluation.IsErrorEvaluating {
		log.Info().Uint("testStatusID", testStatusID).Msg("Evaluation already completed, returning existing result")
		return &dto.EvaluationResultDTO{
			TestStatusID:  testStatusID,
			Status:        dto.EvaluationStatusAlreadyEvaluated,
			TotalMarks:    evaluation.TotalMarks,
			ObtainedMarks: evaluation.ObtainedMarks,
			Remarks:       evaluation.Remarks,
		}, nil
	}

	answers := status.Answers

	// Objective pass first: deterministic, local, persisted before the
	// external call so a grader outage cannot lose this progress.
	if err := s.scoreObjectiveAnswers(answers); err != nil {
		return nil, err
	}

	// Subjective pass as one batch against the external grader.
	if err := s.scoreSubjectiveAnswers(ctx, answers); err != nil {
		if stickyErr := s.persistEvaluation(evaluation, testStatusID, 0, 0, true, "subjective grading failed, evaluation can be retried"); stickyErr != nil {
			log.Error().Err(stickyErr).Uint("testStatusID", testStatusID).Msg("Failed to persist evaluation error flag")
			return nil, stickyErr
		}
		log.Warn().Err(err).Uint("testStatusID", testStatusID).Msg("Subjective grading failed, MCQ marks retained")
		return &dto.EvaluationResultDTO{
			TestStatusID: testStatusID,
			Status:       dto.EvaluationStatusError,
			Retryable:    true,
			Remarks:      "subjective grading failed, try again later",
		}, ErrGradingUnavailable
	}

	var totalMarks, obtainedMarks float64
	for i := range answers {
		totalMarks += answers[i].Question.Marks
		if answers[i].MarksObtained != nil {
			obtainedMarks += *answers[i].MarksObtained
		}
	}

	if err := s.persistEvaluation(evaluation, testStatusID, totalMarks, obtainedMarks, false, ""); err != nil {
		return nil, err
	}

	s.notifier.Notify(EventTestEvaluated, status.StudentID, status.TestID)
	log.Info().Uint("testStatusID", testStatusID).Float64("obtained", obtainedMarks).Float64("total", totalMarks).Msg("Evaluation completed")

	return &dto.EvaluationResultDTO{
		TestStatusID:  testStatusID,
		Status:        dto.EvaluationStatusEvaluated,
		TotalMarks:    totalMarks,
		ObtainedMarks: obtainedMarks,
	}, nil
}

// scoreObjectiveAnswers scores and persists every unscored MCQ answer.
// Answers that already carry marks (an earlier run, or a counsellor's
// manual adjustment) are left untouched.
func (s *evaluationService) scoreObjectiveAnswers(answers []model.Answer) error {
	for i := range answers {
		answer := &answers[i]
		if answer.Question.QuestionMode() != model.ModeMCQ || answer.MarksObtained != nil {
			continue
		}
		marks := ScoreMCQ(
			answer.Question.Marks,
			answer.Question.CorrectOptionIDs(),
			answer.SelectedOptionIDs(),
			answer.Question.Section.NegativeMarkingFactor,
		)
		if err := s.answerRepo.UpdateMarks(answer.ID, marks, ""); err != nil {
			return fmt.Errorf("failed to persist marks for answer %d: %w", answer.ID, err)
		}
		answer.MarksObtained = &marks
	}
	return nil
}

// scoreSubjectiveAnswers batches all unscored subjective answers into one
// grader call. The response is untrusted: marks are clamped to the
// question range, ids outside the sent batch are dropped, and ids the
// grader omitted default to zero. Unanswered questions score zero locally
// and are never sent.
func (s *evaluationService) scoreSubjectiveAnswers(ctx context.Context, answers []model.Answer) error {
	byQuestionID := make(map[uint]*model.Answer)
	var batch []GradeItem
	for i := range answers {
		answer := &answers[i]
		if answer.Question.QuestionMode() != model.ModeSubjective || answer.MarksObtained != nil {
			continue
		}
		if answer.SubjectiveAnswer == nil {
			if err := s.answerRepo.UpdateMarks(answer.ID, 0, ""); err != nil {
				return fmt.Errorf("failed to persist marks for answer %d: %w", answer.ID, err)
			}
			zero := 0.0
			answer.MarksObtained = &zero
			continue
		}
		byQuestionID[answer.QuestionID] = answer
		batch = append(batch, GradeItem{
			ID:       answer.QuestionID,
			Question: answer.Question.Prompt,
			Answer:   *answer.SubjectiveAnswer,
			MaxMarks: answer.Question.Marks,
		})
	}
	if len(batch) == 0 {
		return nil
	}

	graderCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.grader.EvaluateBatch(graderCtx, batch)
	if err != nil {
		return err
	}

	marksByQuestionID := make(map[uint]float64, len(results))
	for _, result := range results {
		answer, ok := byQuestionID[result.ID]
		if !ok {
			log.Warn().Uint("questionID", result.ID).Msg("Grader returned an id outside the sent batch, ignoring")
			continue
		}
		marks := result.Marks
		if marks < 0 {
			marks = 0
		}
		if marks > answer.Question.Marks {
			marks = answer.Question.Marks
		}
		marksByQuestionID[result.ID] = marks
	}

	for questionID, answer := range byQuestionID {
		marks := marksByQuestionID[questionID] // absent ids default to 0
		if err := s.answerRepo.UpdateMarks(answer.ID, marks, ""); err != nil {
			return fmt.Errorf("failed to persist marks for answer %d: %w", answer.ID, err)
		}
		m := marks
		answer.MarksObtained = &m
	}
	return nil
}

func (s *evaluationService) persistEvaluation(existing *model.Evaluation, testStatusID uint, total, obtained float64, isError bool, remarks string) error {
	evaluation := existing
	if evaluation == nil {
		evaluation = &model.Evaluation{TestStatusID: testStatusID}
	}
	if !isError {
		evaluation.TotalMarks = total
		evaluation.ObtainedMarks = obtained
	}
	evaluation.IsErrorEvaluating = isError
	evaluation.Remarks = remarks
	if err := s.evalRepo.Save(evaluation); err != nil {
		return fmt.Errorf("failed to persist evaluation: %w", err)
	}
	return nil
}
