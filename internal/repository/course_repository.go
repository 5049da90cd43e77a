package repository

import (
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	AttachTest(courseID, testID uint, order int) error
	Enroll(studentID, courseID uint) error
	// IsTestAssignedToStudent reports whether the student is enrolled in
	// any course that includes the test.
	IsTestAssignedToStudent(studentID, testID uint) (bool, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) AttachTest(courseID, testID uint, order int) error {
	return r.db.Create(&model.CourseTest{
		CourseID:      courseID,
		TestID:        testID,
		OrderInCourse: order,
	}).Error
}

func (r *courseRepository) Enroll(studentID, courseID uint) error {
	return r.db.Create(&model.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}).Error
}

func (r *courseRepository) IsTestAssignedToStudent(studentID, testID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.CourseTest{}).
		Joins("JOIN enrollments ON enrollments.course_id = course_tests.course_id").
		Where("enrollments.student_id = ? AND course_tests.test_id = ?", studentID, testID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
