package repository

import (
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"gorm.io/gorm"
)

type EvaluationRepository interface {
	FindByTestStatusID(testStatusID uint) (*model.Evaluation, error)
	Save(evaluation *model.Evaluation) error
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) FindByTestStatusID(testStatusID uint) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.db.Where("test_status_id = ?", testStatusID).First(&evaluation).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *evaluationRepository) Save(evaluation *model.Evaluation) error {
	return r.db.Save(evaluation).Error
}
