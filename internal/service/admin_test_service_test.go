package service

import (
	"math"
	"testing"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
)

func validTestPayload() dto.TestCreateDTO {
	return dto.TestCreateDTO{
		Title:           "IELTS Mock 2",
		DurationMinutes: 90,
		Sections: []dto.SectionCreateDTO{
			{
				Title: "Reading", QuestionMode: "mcq", NegativeMarkingFactor: 0.25, OrderInTest: 1,
				Questions: []dto.QuestionCreateDTO{
					{
						Prompt: "Select all primes", Marks: 4, OrderInSection: 1,
						Options: []dto.OptionCreateDTO{
							{Text: "2", IsCorrect: true},
							{Text: "5", IsCorrect: true},
							{Text: "6"},
						},
					},
					{
						Prompt: "12 * 12?", Marks: 2, IsSingleAnswer: true, OrderInSection: 2,
						Options: []dto.OptionCreateDTO{
							{Text: "144", IsCorrect: true},
							{Text: "124"},
						},
					},
				},
			},
			{
				Title: "Writing", QuestionMode: "sub", OrderInTest: 2,
				Questions: []dto.QuestionCreateDTO{
					{Prompt: "Why study abroad?", Marks: 5, OrderInSection: 1},
				},
			},
		},
	}
}

func TestCreateTestComputesTotalMarks(t *testing.T) {
	repo := newFakeTestRepo()
	svc := NewAdminTestService(repo)

	resp, err := svc.CreateTest(validTestPayload())
	if err != nil {
		t.Fatalf("CreateTest() error = %v", err)
	}
	if math.Abs(resp.TotalMarks-11) > 1e-9 {
		t.Errorf("totalMarks = %v, want 11", resp.TotalMarks)
	}

	stored, err := repo.FindByID(resp.ID)
	if err != nil {
		t.Fatalf("created test was not persisted: %v", err)
	}
	if math.Abs(stored.TotalMarks-11) > 1e-9 {
		t.Errorf("persisted totalMarks = %v, want the cached 11", stored.TotalMarks)
	}
	if len(stored.Sections) != 2 {
		t.Errorf("persisted sections = %d, want 2", len(stored.Sections))
	}
}

func TestCreateTestAcceptsSingleAnswerWithSeveralCorrectOptions(t *testing.T) {
	// Misconfigured but scorable; authoring warns instead of rejecting.
	req := validTestPayload()
	req.Sections[0].Questions[1].Options[1].IsCorrect = true

	if _, err := NewAdminTestService(newFakeTestRepo()).CreateTest(req); err != nil {
		t.Fatalf("CreateTest() error = %v", err)
	}
}

func TestCreateTestRejectsInvalidTrees(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.TestCreateDTO)
	}{
		{
			name:   "duplicate section order",
			mutate: func(req *dto.TestCreateDTO) { req.Sections[1].OrderInTest = 1 },
		},
		{
			name:   "duplicate question order within a section",
			mutate: func(req *dto.TestCreateDTO) { req.Sections[0].Questions[1].OrderInSection = 1 },
		},
		{
			name: "mcq question with a single option",
			mutate: func(req *dto.TestCreateDTO) {
				req.Sections[0].Questions[0].Options = req.Sections[0].Questions[0].Options[:1]
			},
		},
		{
			name: "mcq question without a correct option",
			mutate: func(req *dto.TestCreateDTO) {
				for i := range req.Sections[0].Questions[0].Options {
					req.Sections[0].Questions[0].Options[i].IsCorrect = false
				}
			},
		},
		{
			name: "subjective question carrying options",
			mutate: func(req *dto.TestCreateDTO) {
				req.Sections[1].Questions[0].Options = []dto.OptionCreateDTO{{Text: "stray"}}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeTestRepo()
			svc := NewAdminTestService(repo)

			req := validTestPayload()
			tc.mutate(&req)

			if _, err := svc.CreateTest(req); err == nil {
				t.Fatal("CreateTest() error = nil, want validation error")
			}
			if len(repo.tests) != 0 {
				t.Error("an invalid test tree was persisted")
			}
		})
	}
}
