package repository

import (
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByStatusAndQuestion(testStatusID, questionID uint) (*model.Answer, error)
	FindAllByStatus(testStatusID uint) ([]model.Answer, error)
	Create(answer *model.Answer) error
	Update(answer *model.Answer) error
	// ReplaceSelectedOptions swaps the MCQ selection wholesale; a save is a
	// full replace, never a merge.
	ReplaceSelectedOptions(answer *model.Answer, options []model.Option) error
	UpdateMarks(answerID uint, marks float64, remarks string) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByStatusAndQuestion(testStatusID, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Preload("SelectedOptions").
		Where("test_status_id = ? AND question_id = ?", testStatusID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindAllByStatus(testStatusID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Preload("SelectedOptions").
		Preload("Question.Section").
		Preload("Question.Options").
		Where("test_status_id = ?", testStatusID).
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) ReplaceSelectedOptions(answer *model.Answer, options []model.Option) error {
	assoc := r.db.Model(answer).Association("SelectedOptions")
	if len(options) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(options)
}

func (r *answerRepository) UpdateMarks(answerID uint, marks float64, remarks string) error {
	updates := map[string]interface{}{"marks_obtained": marks}
	if remarks != "" {
		updates["remarks"] = remarks
	}
	return r.db.Model(&model.Answer{}).Where("id = ?", answerID).Updates(updates).Error
}
