package repository

import (
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	// FindByIDWithContent loads the full authoring tree: ordered sections,
	// their ordered questions and options.
	FindByIDWithContent(id uint) (*model.Test, error)
	FindAllWithSectionCount() ([]struct {
		model.Test
		SectionCount int
	}, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// GORM creates the nested sections, questions and options along with the test.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithContent(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_sections.order_in_test ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_section ASC")
		}).
		Preload("Sections.Questions.Options").
		First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllWithSectionCount() ([]struct {
	model.Test
	SectionCount int
}, error) {
	var results []struct {
		model.Test
		SectionCount int
	}
	err := r.db.Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM test_sections WHERE test_sections.test_id = tests.id AND test_sections.deleted_at IS NULL) as section_count").
		Where("tests.deleted_at IS NULL").
		Order("tests.priority DESC, tests.created_at DESC").
		Scan(&results).Error
	return results, err
}
