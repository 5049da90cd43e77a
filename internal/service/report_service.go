package service

import (
	"fmt"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReportService projects evaluated attempts into student-facing reports.
// Both projections are pure reads: no scoring happens here.
type ReportService interface {
	// BuildReport returns the full section-grouped report: per-option
	// correctness and selection flags for MCQ, answer text and counsellor
	// remarks for subjective questions.
	BuildReport(testStatusID uint) (*dto.TestReportDTO, error)
	// BuildSummary returns the aggregate-only projection (section totals,
	// no per-option detail) for quick polling.
	BuildSummary(testStatusID uint) (*dto.TestReportSummaryDTO, error)
}

type reportService struct {
	statusRepo repository.TestStatusRepository
}

func NewReportService(statusRepo repository.TestStatusRepository) ReportService {
	return &reportService{statusRepo: statusRepo}
}

func (s *reportService) BuildReport(testStatusID uint) (*dto.TestReportDTO, error) {
	status, err := s.statusRepo.FindByIDWithDetails(testStatusID)
	if err != nil {
		log.Warn().Err(err).Uint("testStatusID", testStatusID).Msg("BuildReport: attempt not found")
		return nil, fmt.Errorf("test attempt not found with ID %d: %w", testStatusID, err)
	}

	answersByQuestionID := indexAnswers(status.Answers)

	report := &dto.TestReportDTO{
		TestStatusID: status.ID,
		TestID:       status.TestID,
		TestTitle:    status.Test.Title,
		Status:       status.Status,
	}
	if status.Evaluation != nil && !status.Evaluation.IsErrorEvaluating {
		report.Evaluated = true
		report.TotalMarks = status.Evaluation.TotalMarks
		report.ObtainedMarks = status.Evaluation.ObtainedMarks
	}

	for _, section := range status.Test.Sections {
		sectionDTO := dto.ReportSectionDTO{
			ID:           section.ID,
			Title:        section.Title,
			QuestionMode: section.QuestionMode,
			OrderInTest:  section.OrderInTest,
		}
		for _, question := range section.Questions {
			sectionDTO.TotalMarks += question.Marks
			questionDTO := dto.ReportQuestionDTO{
				ID:     question.ID,
				Prompt: question.Prompt,
				Marks:  question.Marks,
			}

			answer := answersByQuestionID[question.ID]
			if answer != nil {
				questionDTO.MarksObtained = answer.MarksObtained
				questionDTO.Remarks = answer.Remarks
				if answer.MarksObtained != nil {
					sectionDTO.ObtainedMarks += *answer.MarksObtained
				}
			}

			if section.QuestionMode == model.ModeMCQ {
				selected := map[uint]bool{}
				if answer != nil {
					for _, id := range answer.SelectedOptionIDs() {
						selected[id] = true
					}
				}
				for _, option := range question.Options {
					questionDTO.Options = append(questionDTO.Options, dto.ReportOptionDTO{
						ID:         option.ID,
						Text:       option.Text,
						IsCorrect:  option.IsCorrect,
						IsSelected: selected[option.ID],
					})
				}
			} else if answer != nil {
				questionDTO.SubjectiveAnswer = answer.SubjectiveAnswer
			}

			sectionDTO.Questions = append(sectionDTO.Questions, questionDTO)
		}
		report.Sections = append(report.Sections, sectionDTO)
	}

	return report, nil
}

func (s *reportService) BuildSummary(testStatusID uint) (*dto.TestReportSummaryDTO, error) {
	status, err := s.statusRepo.FindByIDWithDetails(testStatusID)
	if err != nil {
		return nil, fmt.Errorf("test attempt not found with ID %d: %w", testStatusID, err)
	}

	answersByQuestionID := indexAnswers(status.Answers)

	summary := &dto.TestReportSummaryDTO{
		TestStatusID: status.ID,
		TestID:       status.TestID,
		Status:       status.Status,
	}
	if status.Evaluation != nil && !status.Evaluation.IsErrorEvaluating {
		summary.Evaluated = true
		summary.TotalMarks = status.Evaluation.TotalMarks
		summary.ObtainedMarks = status.Evaluation.ObtainedMarks
	}

	for _, section := range status.Test.Sections {
		aggregate := dto.SectionAggregateDTO{
			ID:           section.ID,
			Title:        section.Title,
			QuestionMode: section.QuestionMode,
		}
		for _, question := range section.Questions {
			aggregate.TotalMarks += question.Marks
			if answer := answersByQuestionID[question.ID]; answer != nil && answer.MarksObtained != nil {
				aggregate.ObtainedMarks += *answer.MarksObtained
			}
		}
		summary.Sections = append(summary.Sections, aggregate)
	}

	return summary, nil
}

func indexAnswers(answers []model.Answer) map[uint]*model.Answer {
	byQuestionID := make(map[uint]*model.Answer, len(answers))
	for i := range answers {
		byQuestionID[answers[i].QuestionID] = &answers[i]
	}
	return byQuestionID
}
