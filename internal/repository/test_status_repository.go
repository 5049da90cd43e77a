package repository

import (
	"errors"
	"time"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type TestStatusRepository interface {
	FindByID(id uint) (*model.TestStatus, error)
	FindByStudentAndTest(studentID, testID uint) (*model.TestStatus, error)
	// FindByIDWithDetails loads the attempt together with its answers
	// (including selected options and each question's section), the test
	// content tree and the evaluation, if any.
	FindByIDWithDetails(id uint) (*model.TestStatus, error)
	// GetOrCreate returns the existing row for (student, test) or inserts a
	// fresh pending one. The insert races safely against concurrent callers:
	// a unique violation on (student_id, test_id) falls back to re-fetching
	// the winner's row. The second return value reports whether this call
	// created the row.
	GetOrCreate(status *model.TestStatus) (*model.TestStatus, bool, error)
	Save(status *model.TestStatus) error
	// CompleteIfOngoing flips the row to completed only if it is still
	// ongoing; returns false when the guard matched no row, which means a
	// concurrent submit (or an expiry) won the race.
	CompleteIfOngoing(id uint, completedAt time.Time) (bool, error)
	MarkExpired(id uint) error
}

type testStatusRepository struct {
	db *gorm.DB
}

func NewTestStatusRepository(db *gorm.DB) TestStatusRepository {
	return &testStatusRepository{db: db}
}

func (r *testStatusRepository) FindByID(id uint) (*model.TestStatus, error) {
	var status model.TestStatus
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *testStatusRepository) FindByStudentAndTest(studentID, testID uint) (*model.TestStatus, error) {
	var status model.TestStatus
	err := r.db.Where("student_id = ? AND test_id = ?", studentID, testID).First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *testStatusRepository) FindByIDWithDetails(id uint) (*model.TestStatus, error) {
	var status model.TestStatus
	err := r.db.
		Preload("Test.Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_sections.order_in_test ASC")
		}).
		Preload("Test.Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_section ASC")
		}).
		Preload("Test.Sections.Questions.Options").
		Preload("Answers.SelectedOptions").
		Preload("Answers.Question.Section").
		Preload("Answers.Question.Options").
		Preload("Evaluation").
		First(&status, id).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *testStatusRepository) GetOrCreate(status *model.TestStatus) (*model.TestStatus, bool, error) {
	var existing model.TestStatus
	err := r.db.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("student_id = ? AND test_id = ?", status.StudentID, status.TestID).
			First(&existing).Error
		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		return tx.Create(status).Error
	})
	if err == nil {
		if existing.ID != 0 {
			return &existing, false, nil
		}
		return status, true, nil
	}

	// Lost the create race: the unique (student_id, test_id) index rejected
	// our insert, so the row now exists. Return it.
	if isUniqueViolation(err) {
		refetched, refetchErr := r.FindByStudentAndTest(status.StudentID, status.TestID)
		if refetchErr != nil {
			return nil, false, refetchErr
		}
		return refetched, false, nil
	}
	return nil, false, err
}

func (r *testStatusRepository) Save(status *model.TestStatus) error {
	return r.db.Save(status).Error
}

func (r *testStatusRepository) CompleteIfOngoing(id uint, completedAt time.Time) (bool, error) {
	result := r.db.Model(&model.TestStatus{}).
		Where("id = ? AND status = ?", id, model.StatusOngoing).
		Updates(map[string]interface{}{
			"status":       model.StatusCompleted,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *testStatusRepository) MarkExpired(id uint) error {
	return r.db.Model(&model.TestStatus{}).
		Where("id = ?", id).
		Update("status", model.StatusExpired).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
