package service

import (
	"fmt"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// AdminTestService covers staff authoring of the test catalog. The tree
// is immutable once students attempt it, so validation happens up front.
type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	GetTest(testID uint) (*dto.TestResponseDTO, error)
	ListTests() ([]dto.TestSummaryDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	sectionOrders := make(map[int]bool)
	var totalMarks float64
	var sections []model.TestSection

	for _, sectionDTO := range req.Sections {
		if sectionOrders[sectionDTO.OrderInTest] {
			return nil, fmt.Errorf("duplicate section order %d", sectionDTO.OrderInTest)
		}
		sectionOrders[sectionDTO.OrderInTest] = true

		questionOrders := make(map[int]bool)
		var questions []model.Question
		for _, questionDTO := range sectionDTO.Questions {
			if questionOrders[questionDTO.OrderInSection] {
				return nil, fmt.Errorf("duplicate question order %d in section '%s'", questionDTO.OrderInSection, sectionDTO.Title)
			}
			questionOrders[questionDTO.OrderInSection] = true

			switch sectionDTO.QuestionMode {
			case model.ModeMCQ:
				if len(questionDTO.Options) < 2 {
					return nil, fmt.Errorf("MCQ question %d in section '%s' needs at least 2 options", questionDTO.OrderInSection, sectionDTO.Title)
				}
				correct := 0
				for _, optionDTO := range questionDTO.Options {
					if optionDTO.IsCorrect {
						correct++
					}
				}
				if correct == 0 {
					return nil, fmt.Errorf("MCQ question %d in section '%s' has no correct option", questionDTO.OrderInSection, sectionDTO.Title)
				}
				if questionDTO.IsSingleAnswer && correct > 1 {
					// Scorable (the formula gives partial credit), but the
					// student can never reach full marks. Authoring keeps going.
					log.Warn().Int("question_order", questionDTO.OrderInSection).Str("section", sectionDTO.Title).
						Int("correct_options", correct).Msg("Single-answer question has several correct options")
				}
			case model.ModeSubjective:
				if len(questionDTO.Options) > 0 {
					return nil, fmt.Errorf("subjective question %d in section '%s' must not carry options", questionDTO.OrderInSection, sectionDTO.Title)
				}
			}

			totalMarks += questionDTO.Marks

			var question model.Question
			copier.Copy(&question, &questionDTO)
			questions = append(questions, question)
		}

		sections = append(sections, model.TestSection{
			Title:                 sectionDTO.Title,
			QuestionMode:          sectionDTO.QuestionMode,
			NegativeMarkingFactor: sectionDTO.NegativeMarkingFactor,
			OrderInTest:           sectionDTO.OrderInTest,
			Questions:             questions,
		})
	}

	test := model.Test{
		Title:                 req.Title,
		Description:           req.Description,
		DurationMinutes:       req.DurationMinutes,
		Priority:              req.Priority,
		TotalMarks:            totalMarks,
		NegativeMarkingFactor: req.NegativeMarkingFactor,
		Sections:              sections,
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	return s.GetTest(test.ID)
}

func (s *adminTestService) GetTest(testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithContent(testID)
	if err != nil {
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test response: %w", err)
	}
	return &resp, nil
}

func (s *adminTestService) ListTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithSectionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	var summaries []dto.TestSummaryDTO
	for _, row := range testsWithCount {
		summaries = append(summaries, dto.TestSummaryDTO{
			ID:              row.Test.ID,
			Title:           row.Test.Title,
			Description:     row.Test.Description,
			DurationMinutes: row.Test.DurationMinutes,
			Priority:        row.Test.Priority,
			TotalMarks:      row.Test.TotalMarks,
			SectionCount:    row.SectionCount,
			CreatedAt:       row.Test.CreatedAt,
		})
	}
	return summaries, nil
}
