package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null;uniqueIndex"`
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CourseTest is the ordered join between a course and the tests it includes.
type CourseTest struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CourseID      uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_course_tests_course_test"`
	TestID        uint      `json:"test_id" gorm:"not null;uniqueIndex:idx_course_tests_course_test"`
	OrderInCourse int       `json:"order_in_course" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	CreatedAt time.Time `json:"created_at"`
}
