package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService drives the test-taking state machine
// (pending → ongoing → completed | expired) and the answer store.
type AttemptService interface {
	// StartOrResume moves a pending attempt to ongoing (setting started_at
	// once and the attempt-local valid_till window), or resumes an ongoing
	// one. The window is wall-clock from the first start and is never
	// extended by repeated calls. Returns the attempt and the test content.
	StartOrResume(studentID, testID uint) (*model.TestStatus, *model.Test, error)

	// SaveAnswer upserts the student's answer for one question. Only legal
	// while the attempt is ongoing. MCQ selections are replaced wholesale;
	// whitespace-only subjective text is stored as no answer.
	SaveAnswer(studentID, testID, questionID uint, selectedOptionIDs []uint, subjectiveText *string) (*model.Answer, error)

	// Submit finishes an ongoing attempt. The completed-update is
	// conditional on the current state, so a concurrent duplicate submit
	// loses cleanly and reports ErrInvalidTransition.
	Submit(studentID, testID uint) (*model.TestStatus, error)
}

type attemptService struct {
	assignment AssignmentService
	testRepo   repository.TestRepository
	statusRepo repository.TestStatusRepository
	answerRepo repository.AnswerRepository
	notifier   Notifier
	now        func() time.Time
}

func NewAttemptService(
	assignment AssignmentService,
	testRepo repository.TestRepository,
	statusRepo repository.TestStatusRepository,
	answerRepo repository.AnswerRepository,
	notifier Notifier,
) AttemptService {
	return &attemptService{
		assignment: assignment,
		testRepo:   testRepo,
		statusRepo: statusRepo,
		answerRepo: answerRepo,
		notifier:   notifier,
		now:        time.Now,
	}
}

// expireIfNeeded lazily applies the ongoing→expired (or pending→expired)
// transition. The transition is persisted before the caller sees the
// rejection, so a timed-out attempt is terminal even if the student never
// calls again.
func (s *attemptService) expireIfNeeded(status *model.TestStatus) (bool, error) {
	if status.Status == model.StatusExpired {
		return true, nil
	}
	if status.Status != model.StatusPending && status.Status != model.StatusOngoing {
		return false, nil
	}

	now := s.now()
	timedOut := now.After(status.Deadline)
	if !timedOut && status.Status == model.StatusOngoing && status.ValidTill != nil {
		timedOut = now.After(*status.ValidTill)
	}
	if !timedOut {
		return false, nil
	}

	if err := s.statusRepo.MarkExpired(status.ID); err != nil {
		return false, fmt.Errorf("failed to persist expiry: %w", err)
	}
	status.Status = model.StatusExpired
	log.Info().Uint("testStatusID", status.ID).Msg("Attempt expired")
	return true, nil
}

func (s *attemptService) StartOrResume(studentID, testID uint) (*model.TestStatus, *model.Test, error) {
	status, err := s.assignment.GetOrAssign(studentID, testID)
	if err != nil {
		return nil, nil, err
	}

	expired, err := s.expireIfNeeded(status)
	if err != nil {
		return nil, nil, err
	}
	if expired {
		return nil, nil, ErrExpired
	}

	test, err := s.testRepo.FindByIDWithContent(testID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load test content: %w", err)
	}

	switch status.Status {
	case model.StatusPending:
		now := s.now()
		validTill := now.Add(time.Duration(test.DurationMinutes) * time.Minute)
		status.Status = model.StatusOngoing
		status.StartedAt = &now
		status.ValidTill = &validTill
		if err := s.statusRepo.Save(status); err != nil {
			return nil, nil, fmt.Errorf("failed to start attempt: %w", err)
		}
		log.Info().Uint("testStatusID", status.ID).Time("validTill", validTill).Msg("Attempt started")
	case model.StatusOngoing:
		// Recompute rather than extend: the window stays anchored to the
		// first started_at even across server restarts.
		validTill := status.StartedAt.Add(time.Duration(test.DurationMinutes) * time.Minute)
		status.ValidTill = &validTill
		if err := s.statusRepo.Save(status); err != nil {
			return nil, nil, fmt.Errorf("failed to resume attempt: %w", err)
		}
	default:
		return nil, nil, ErrInvalidTransition
	}

	return status, test, nil
}

func (s *attemptService) SaveAnswer(studentID, testID, questionID uint, selectedOptionIDs []uint, subjectiveText *string) (*model.Answer, error) {
	status, err := s.statusRepo.FindByStudentAndTest(studentID, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to look up attempt: %w", err)
	}

	expired, err := s.expireIfNeeded(status)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrExpired
	}
	if status.Status != model.StatusOngoing {
		return nil, ErrInvalidTransition
	}

	test, err := s.testRepo.FindByIDWithContent(testID)
	if err != nil {
		return nil, fmt.Errorf("failed to load test content: %w", err)
	}

	question, section := findQuestion(test, questionID)
	if question == nil {
		return nil, ErrInvalidQuestion
	}

	selected, err := resolveSelectedOptions(question, selectedOptionIDs)
	if err != nil {
		return nil, err
	}

	var normalizedText *string
	if section.QuestionMode == model.ModeSubjective && subjectiveText != nil {
		if trimmed := strings.TrimSpace(*subjectiveText); trimmed != "" {
			normalizedText = &trimmed
		}
	}

	answer, err := s.answerRepo.FindByStatusAndQuestion(status.ID, questionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up answer: %w", err)
		}
		answer = &model.Answer{
			TestStatusID:     status.ID,
			QuestionID:       questionID,
			SubjectiveAnswer: normalizedText,
		}
		if err := s.answerRepo.Create(answer); err != nil {
			return nil, fmt.Errorf("failed to create answer: %w", err)
		}
	} else {
		// Replace the payload only; marks are written exclusively by the
		// evaluation engine.
		answer.SubjectiveAnswer = normalizedText
		if err := s.answerRepo.Update(answer); err != nil {
			return nil, fmt.Errorf("failed to update answer: %w", err)
		}
	}

	if section.QuestionMode == model.ModeMCQ {
		if err := s.answerRepo.ReplaceSelectedOptions(answer, selected); err != nil {
			return nil, fmt.Errorf("failed to replace selected options: %w", err)
		}
		answer.SelectedOptions = selected
	}

	return answer, nil
}

func (s *attemptService) Submit(studentID, testID uint) (*model.TestStatus, error) {
	status, err := s.statusRepo.FindByStudentAndTest(studentID, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to look up attempt: %w", err)
	}

	expired, err := s.expireIfNeeded(status)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrExpired
	}
	if status.Status != model.StatusOngoing {
		return nil, ErrInvalidTransition
	}

	completedAt := s.now()
	won, err := s.statusRepo.CompleteIfOngoing(status.ID, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}
	if !won {
		// A concurrent submit or expiry got there first.
		current, refetchErr := s.statusRepo.FindByID(status.ID)
		if refetchErr == nil && current.Status == model.StatusExpired {
			return nil, ErrExpired
		}
		return nil, ErrInvalidTransition
	}

	status.Status = model.StatusCompleted
	status.CompletedAt = &completedAt
	s.notifier.Notify(EventTestSubmitted, studentID, testID)
	log.Info().Uint("testStatusID", status.ID).Msg("Attempt submitted")
	return status, nil
}

// findQuestion locates a question inside the test's section tree,
// returning the question and its owning section.
func findQuestion(test *model.Test, questionID uint) (*model.Question, *model.TestSection) {
	for i := range test.Sections {
		section := &test.Sections[i]
		for j := range section.Questions {
			if section.Questions[j].ID == questionID {
				return &section.Questions[j], section
			}
		}
	}
	return nil, nil
}

// resolveSelectedOptions validates the selection against the question's
// own options. A question without options (subjective) rejects any id.
func resolveSelectedOptions(question *model.Question, selectedIDs []uint) ([]model.Option, error) {
	if len(selectedIDs) == 0 {
		return nil, nil
	}
	if question.IsSingleAnswer && len(selectedIDs) > 1 {
		return nil, ErrTooManyOptions
	}

	byID := make(map[uint]model.Option, len(question.Options))
	for _, o := range question.Options {
		byID[o.ID] = o
	}

	selected := make([]model.Option, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		option, ok := byID[id]
		if !ok {
			return nil, ErrInvalidOption
		}
		selected = append(selected, option)
	}
	return selected, nil
}
