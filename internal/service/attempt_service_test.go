package service

import (
	"errors"
	"testing"
	"time"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
)

// fixtureTest builds a two-section test: an MCQ section with negative
// marking and a subjective section.
func fixtureTest() *model.Test {
	return &model.Test{
		ID:              1,
		Title:           "GRE Mock 1",
		DurationMinutes: 60,
		TotalMarks:      11,
		Sections: []model.TestSection{
			{
				ID: 1, TestID: 1, Title: "Quant", QuestionMode: model.ModeMCQ,
				NegativeMarkingFactor: 0.25, OrderInTest: 1,
				Questions: []model.Question{
					{
						ID: 11, SectionID: 1, Prompt: "Select all primes", Marks: 4, OrderInSection: 1,
						Options: []model.Option{
							{ID: 101, QuestionID: 11, Text: "2", IsCorrect: true},
							{ID: 102, QuestionID: 11, Text: "5", IsCorrect: true},
							{ID: 103, QuestionID: 11, Text: "6"},
							{ID: 104, QuestionID: 11, Text: "9"},
						},
					},
					{
						ID: 12, SectionID: 1, Prompt: "12 * 12?", Marks: 2,
						IsSingleAnswer: true, OrderInSection: 2,
						Options: []model.Option{
							{ID: 105, QuestionID: 12, Text: "144", IsCorrect: true},
							{ID: 106, QuestionID: 12, Text: "124"},
						},
					},
				},
			},
			{
				ID: 2, TestID: 1, Title: "Essay", QuestionMode: model.ModeSubjective, OrderInTest: 2,
				Questions: []model.Question{
					{ID: 13, SectionID: 2, Prompt: "Why study abroad?", Marks: 5, OrderInSection: 1},
				},
			},
		},
	}
}

type attemptEnv struct {
	svc        *attemptService
	statusRepo *fakeStatusRepo
	answerRepo *fakeAnswerRepo
	courseRepo *fakeCourseRepo
	notifier   *fakeNotifier
	base       time.Time
	clock      *time.Time
}

func newAttemptEnv(test *model.Test, seeded ...*model.TestStatus) *attemptEnv {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := base
	env := &attemptEnv{
		statusRepo: newFakeStatusRepo(seeded...),
		answerRepo: newFakeAnswerRepo(),
		courseRepo: newFakeCourseRepo(),
		notifier:   &fakeNotifier{},
		base:       base,
		clock:      &clock,
	}
	now := func() time.Time { return *env.clock }
	testRepo := newFakeTestRepo(test)
	assignment := &assignmentService{
		testRepo:   testRepo,
		statusRepo: env.statusRepo,
		courseRepo: env.courseRepo,
		notifier:   env.notifier,
		window:     24 * time.Hour,
		now:        now,
	}
	env.svc = &attemptService{
		assignment: assignment,
		testRepo:   testRepo,
		statusRepo: env.statusRepo,
		answerRepo: env.answerRepo,
		notifier:   env.notifier,
		now:        now,
	}
	return env
}

func (env *attemptEnv) advance(d time.Duration) {
	*env.clock = env.clock.Add(d)
}

func TestStartOrResumeStartsPendingAttempt(t *testing.T) {
	env := newAttemptEnv(fixtureTest())
	env.courseRepo.allow(7, 1)

	status, test, err := env.svc.StartOrResume(7, 1)
	if err != nil {
		t.Fatalf("StartOrResume() error = %v", err)
	}
	if status.Status != model.StatusOngoing {
		t.Errorf("status = %q, want %q", status.Status, model.StatusOngoing)
	}
	if status.StartedAt == nil || !status.StartedAt.Equal(env.base) {
		t.Errorf("startedAt = %v, want %v", status.StartedAt, env.base)
	}
	if want := env.base.Add(60 * time.Minute); status.ValidTill == nil || !status.ValidTill.Equal(want) {
		t.Errorf("validTill = %v, want %v", status.ValidTill, want)
	}
	if test == nil || len(test.Sections) != 2 {
		t.Errorf("expected the full test content alongside the attempt")
	}
}

func TestStartOrResumeKeepsWindowAnchored(t *testing.T) {
	env := newAttemptEnv(fixtureTest())
	env.courseRepo.allow(7, 1)

	first, _, err := env.svc.StartOrResume(7, 1)
	if err != nil {
		t.Fatalf("first StartOrResume() error = %v", err)
	}

	env.advance(10 * time.Minute)
	second, _, err := env.svc.StartOrResume(7, 1)
	if err != nil {
		t.Fatalf("resume error = %v", err)
	}
	if !second.StartedAt.Equal(*first.StartedAt) {
		t.Errorf("resume changed startedAt from %v to %v", first.StartedAt, second.StartedAt)
	}
	if want := env.base.Add(60 * time.Minute); !second.ValidTill.Equal(want) {
		t.Errorf("resume moved validTill to %v, want the original %v", second.ValidTill, want)
	}
}

func TestStartOrResumePastDeadlineExpires(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	env := newAttemptEnv(fixtureTest(), &model.TestStatus{
		ID: 1, StudentID: 7, TestID: 1, Status: model.StatusPending,
		AssignedAt: base.Add(-48 * time.Hour), Deadline: base.Add(-24 * time.Hour),
	})
	env.courseRepo.allow(7, 1)

	if _, _, err := env.svc.StartOrResume(7, 1); !errors.Is(err, ErrExpired) {
		t.Fatalf("StartOrResume() error = %v, want ErrExpired", err)
	}
	stored, _ := env.statusRepo.FindByID(1)
	if stored.Status != model.StatusExpired {
		t.Errorf("expiry was not persisted, status = %q", stored.Status)
	}
}

func TestStartOrResumeNotEligible(t *testing.T) {
	env := newAttemptEnv(fixtureTest())

	if _, _, err := env.svc.StartOrResume(7, 1); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("StartOrResume() error = %v, want ErrNotEligible", err)
	}
	if len(env.statusRepo.statuses) != 0 {
		t.Error("a TestStatus row was created for an ineligible student")
	}
}

func TestStartOrResumeCompletedAttempt(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	completedAt := base.Add(-time.Hour)
	env := newAttemptEnv(fixtureTest(), &model.TestStatus{
		ID: 1, StudentID: 7, TestID: 1, Status: model.StatusCompleted,
		Deadline: base.Add(24 * time.Hour), CompletedAt: &completedAt,
	})
	env.courseRepo.allow(7, 1)

	if _, _, err := env.svc.StartOrResume(7, 1); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("StartOrResume() error = %v, want ErrInvalidTransition", err)
	}
}

func (env *attemptEnv) mustStart(t *testing.T, studentID, testID uint) {
	t.Helper()
	env.courseRepo.allow(studentID, testID)
	if _, _, err := env.svc.StartOrResume(studentID, testID); err != nil {
		t.Fatalf("StartOrResume() error = %v", err)
	}
}

func TestSaveAnswerValidation(t *testing.T) {
	text := "some text"
	tests := []struct {
		name       string
		questionID uint
		optionIDs  []uint
		subjective *string
		wantErr    error
	}{
		{name: "unknown question", questionID: 999, wantErr: ErrInvalidQuestion},
		{name: "option from another question", questionID: 11, optionIDs: []uint{105}, wantErr: ErrInvalidOption},
		{name: "several options on a single-answer question", questionID: 12, optionIDs: []uint{105, 106}, wantErr: ErrTooManyOptions},
		{name: "valid mcq selection", questionID: 11, optionIDs: []uint{101, 103}},
		{name: "valid subjective answer", questionID: 13, subjective: &text},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newAttemptEnv(fixtureTest())
			env.mustStart(t, 7, 1)

			_, err := env.svc.SaveAnswer(7, 1, tc.questionID, tc.optionIDs, tc.subjective)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("SaveAnswer() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveAnswer() error = %v", err)
			}
		})
	}
}

func TestSaveAnswerRequiresOngoingAttempt(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("pending attempt", func(t *testing.T) {
		env := newAttemptEnv(fixtureTest(), &model.TestStatus{
			ID: 1, StudentID: 7, TestID: 1, Status: model.StatusPending,
			Deadline: base.Add(24 * time.Hour),
		})
		if _, err := env.svc.SaveAnswer(7, 1, 11, []uint{101}, nil); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("SaveAnswer() error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("attempt window elapsed", func(t *testing.T) {
		startedAt := base.Add(-2 * time.Hour)
		validTill := base.Add(-time.Hour)
		env := newAttemptEnv(fixtureTest(), &model.TestStatus{
			ID: 1, StudentID: 7, TestID: 1, Status: model.StatusOngoing,
			Deadline: base.Add(24 * time.Hour), StartedAt: &startedAt, ValidTill: &validTill,
		})
		if _, err := env.svc.SaveAnswer(7, 1, 11, []uint{101}, nil); !errors.Is(err, ErrExpired) {
			t.Fatalf("SaveAnswer() error = %v, want ErrExpired", err)
		}
		stored, _ := env.statusRepo.FindByID(1)
		if stored.Status != model.StatusExpired {
			t.Errorf("expiry was not persisted, status = %q", stored.Status)
		}
	})
}

func TestSaveAnswerNormalizesWhitespaceSubjective(t *testing.T) {
	env := newAttemptEnv(fixtureTest())
	env.mustStart(t, 7, 1)

	blank := "   \n\t "
	answer, err := env.svc.SaveAnswer(7, 1, 13, nil, &blank)
	if err != nil {
		t.Fatalf("SaveAnswer() error = %v", err)
	}
	if answer.SubjectiveAnswer != nil {
		t.Errorf("whitespace-only answer stored as %q, want nil", *answer.SubjectiveAnswer)
	}
}

func TestSaveAnswerReplacesSelectionWholesale(t *testing.T) {
	env := newAttemptEnv(fixtureTest())
	env.mustStart(t, 7, 1)

	first, err := env.svc.SaveAnswer(7, 1, 11, []uint{101, 103}, nil)
	if err != nil {
		t.Fatalf("first SaveAnswer() error = %v", err)
	}
	if got := first.SelectedOptionIDs(); len(got) != 2 {
		t.Fatalf("selection = %v, want two options", got)
	}

	// Marks belong to the evaluation engine; a re-save must not clear them.
	marks := 1.75
	first.MarksObtained = &marks

	second, err := env.svc.SaveAnswer(7, 1, 11, nil, nil)
	if err != nil {
		t.Fatalf("second SaveAnswer() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-save created a new row %d, want update of row %d", second.ID, first.ID)
	}
	if got := second.SelectedOptionIDs(); len(got) != 0 {
		t.Errorf("selection after clearing = %v, want empty", got)
	}
	if second.MarksObtained == nil {
		t.Error("re-save cleared previously assigned marks")
	}
}

func TestSubmitCompletesOngoingAttempt(t *testing.T) {
	env := newAttemptEnv(fixtureTest())
	env.mustStart(t, 7, 1)
	env.advance(30 * time.Minute)

	status, err := env.svc.Submit(7, 1)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if status.Status != model.StatusCompleted {
		t.Errorf("status = %q, want %q", status.Status, model.StatusCompleted)
	}
	if want := env.base.Add(30 * time.Minute); status.CompletedAt == nil || !status.CompletedAt.Equal(want) {
		t.Errorf("completedAt = %v, want %v", status.CompletedAt, want)
	}

	found := false
	for _, event := range env.notifier.events {
		if event == EventTestSubmitted {
			found = true
		}
	}
	if !found {
		t.Errorf("submit notification missing, events = %v", env.notifier.events)
	}
}

func TestSubmitTwice(t *testing.T) {
	env := newAttemptEnv(fixtureTest())
	env.mustStart(t, 7, 1)

	if _, err := env.svc.Submit(7, 1); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if _, err := env.svc.Submit(7, 1); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second Submit() error = %v, want ErrInvalidTransition", err)
	}
}

func TestSubmitAfterWindowExpires(t *testing.T) {
	env := newAttemptEnv(fixtureTest())
	env.mustStart(t, 7, 1)
	env.advance(61 * time.Minute)

	if _, err := env.svc.Submit(7, 1); !errors.Is(err, ErrExpired) {
		t.Fatalf("Submit() error = %v, want ErrExpired", err)
	}
	stored, _ := env.statusRepo.FindByStudentAndTest(7, 1)
	if stored.Status != model.StatusExpired {
		t.Errorf("expiry was not persisted, status = %q", stored.Status)
	}
}
