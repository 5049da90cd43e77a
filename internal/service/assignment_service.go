package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/GradGlobe-org/admin-panel-sub000/config"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AssignmentService materializes TestStatus rows: the first eligibility
// check for a (student, test) pair creates the attempt record with the
// configured deadline window.
type AssignmentService interface {
	// GetOrAssign returns the existing TestStatus for (student, test) or
	// creates a pending one. Idempotent; concurrent calls converge on the
	// same row. Fails with ErrNotEligible when the student is not enrolled
	// in any course containing the test, in which case no row is created.
	GetOrAssign(studentID, testID uint) (*model.TestStatus, error)
}

type assignmentService struct {
	testRepo   repository.TestRepository
	statusRepo repository.TestStatusRepository
	courseRepo repository.CourseRepository
	notifier   Notifier
	window     time.Duration
	now        func() time.Time
}

func NewAssignmentService(
	cfg *config.Config,
	testRepo repository.TestRepository,
	statusRepo repository.TestStatusRepository,
	courseRepo repository.CourseRepository,
	notifier Notifier,
) AssignmentService {
	return &assignmentService{
		testRepo:   testRepo,
		statusRepo: statusRepo,
		courseRepo: courseRepo,
		notifier:   notifier,
		window:     time.Duration(cfg.Exam.AssignmentWindowHours) * time.Hour,
		now:        time.Now,
	}
}

func (s *assignmentService) GetOrAssign(studentID, testID uint) (*model.TestStatus, error) {
	existing, err := s.statusRepo.FindByStudentAndTest(studentID, testID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up test status: %w", err)
	}

	if _, err := s.testRepo.FindByID(testID); err != nil {
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	eligible, err := s.courseRepo.IsTestAssignedToStudent(studentID, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	now := s.now()
	status := &model.TestStatus{
		StudentID:  studentID,
		TestID:     testID,
		Status:     model.StatusPending,
		AssignedAt: now,
		Deadline:   now.Add(s.window),
	}

	created, fresh, err := s.statusRepo.GetOrCreate(status)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Uint("testID", testID).Msg("Failed to create test status")
		return nil, fmt.Errorf("failed to assign test: %w", err)
	}
	if fresh {
		s.notifier.Notify(EventTestAssigned, studentID, testID)
		log.Info().Uint("studentID", studentID).Uint("testID", testID).Time("deadline", created.Deadline).Msg("Test assigned")
	}
	return created, nil
}
