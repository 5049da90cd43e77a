package service

import (
	"fmt"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// AdminCourseService manages courses, their ordered test lists and
// student enrollments — the inputs the assignment resolver reads.
type AdminCourseService interface {
	CreateCourse(req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error)
	AttachTest(courseID uint, req dto.AttachTestDTO) error
	EnrollStudent(courseID uint, req dto.EnrollStudentDTO) error
}

type adminCourseService struct {
	courseRepo repository.CourseRepository
	testRepo   repository.TestRepository
}

func NewAdminCourseService(courseRepo repository.CourseRepository, testRepo repository.TestRepository) AdminCourseService {
	return &adminCourseService{courseRepo: courseRepo, testRepo: testRepo}
}

func (s *adminCourseService) CreateCourse(req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error) {
	course := model.Course{Title: req.Title, Description: req.Description}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Msg("Failed to create course")
		return nil, fmt.Errorf("database error creating course: %w", err)
	}
	var resp dto.CourseResponseDTO
	copier.Copy(&resp, &course)
	return &resp, nil
}

func (s *adminCourseService) AttachTest(courseID uint, req dto.AttachTestDTO) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		return fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if _, err := s.testRepo.FindByID(req.TestID); err != nil {
		return fmt.Errorf("test not found with ID %d: %w", req.TestID, err)
	}
	if err := s.courseRepo.AttachTest(courseID, req.TestID, req.OrderInCourse); err != nil {
		return fmt.Errorf("failed to attach test %d to course %d: %w", req.TestID, courseID, err)
	}
	return nil
}

func (s *adminCourseService) EnrollStudent(courseID uint, req dto.EnrollStudentDTO) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		return fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if err := s.courseRepo.Enroll(req.StudentID, courseID); err != nil {
		return fmt.Errorf("failed to enroll student %d in course %d: %w", req.StudentID, courseID, err)
	}
	return nil
}
