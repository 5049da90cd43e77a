package service

import (
	"context"
	"time"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"gorm.io/gorm"
)

// In-memory fakes for the repository and grader interfaces, used across
// the service tests.

type fakeTestRepo struct {
	tests map[uint]*model.Test
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	repo := &fakeTestRepo{tests: map[uint]*model.Test{}}
	for _, t := range tests {
		repo.tests[t.ID] = t
	}
	return repo
}

func (r *fakeTestRepo) Create(test *model.Test) error {
	if test.ID == 0 {
		test.ID = uint(len(r.tests) + 1)
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	test, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return test, nil
}

func (r *fakeTestRepo) FindByIDWithContent(id uint) (*model.Test, error) {
	return r.FindByID(id)
}

func (r *fakeTestRepo) FindAllWithSectionCount() ([]struct {
	model.Test
	SectionCount int
}, error) {
	return nil, nil
}

type fakeCourseRepo struct {
	assigned map[[2]uint]bool
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{assigned: map[[2]uint]bool{}}
}

func (r *fakeCourseRepo) allow(studentID, testID uint) {
	r.assigned[[2]uint{studentID, testID}] = true
}

func (r *fakeCourseRepo) Create(course *model.Course) error { return nil }

func (r *fakeCourseRepo) FindByID(id uint) (*model.Course, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCourseRepo) AttachTest(courseID, testID uint, order int) error { return nil }

func (r *fakeCourseRepo) Enroll(studentID, courseID uint) error { return nil }

func (r *fakeCourseRepo) IsTestAssignedToStudent(studentID, testID uint) (bool, error) {
	return r.assigned[[2]uint{studentID, testID}], nil
}

type fakeStatusRepo struct {
	statuses map[uint]*model.TestStatus
	nextID   uint
}

func newFakeStatusRepo(statuses ...*model.TestStatus) *fakeStatusRepo {
	repo := &fakeStatusRepo{statuses: map[uint]*model.TestStatus{}, nextID: 1}
	for _, s := range statuses {
		repo.statuses[s.ID] = s
		if s.ID >= repo.nextID {
			repo.nextID = s.ID + 1
		}
	}
	return repo
}

func (r *fakeStatusRepo) FindByID(id uint) (*model.TestStatus, error) {
	status, ok := r.statuses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return status, nil
}

func (r *fakeStatusRepo) FindByStudentAndTest(studentID, testID uint) (*model.TestStatus, error) {
	for _, status := range r.statuses {
		if status.StudentID == studentID && status.TestID == testID {
			return status, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStatusRepo) FindByIDWithDetails(id uint) (*model.TestStatus, error) {
	return r.FindByID(id)
}

func (r *fakeStatusRepo) GetOrCreate(status *model.TestStatus) (*model.TestStatus, bool, error) {
	if existing, err := r.FindByStudentAndTest(status.StudentID, status.TestID); err == nil {
		return existing, false, nil
	}
	status.ID = r.nextID
	r.nextID++
	r.statuses[status.ID] = status
	return status, true, nil
}

func (r *fakeStatusRepo) Save(status *model.TestStatus) error {
	r.statuses[status.ID] = status
	return nil
}

func (r *fakeStatusRepo) CompleteIfOngoing(id uint, completedAt time.Time) (bool, error) {
	status, ok := r.statuses[id]
	if !ok || status.Status != model.StatusOngoing {
		return false, nil
	}
	status.Status = model.StatusCompleted
	status.CompletedAt = &completedAt
	return true, nil
}

func (r *fakeStatusRepo) MarkExpired(id uint) error {
	if status, ok := r.statuses[id]; ok {
		status.Status = model.StatusExpired
	}
	return nil
}

type fakeAnswerRepo struct {
	answers   []*model.Answer
	nextID    uint
	markCalls map[uint]int
	lastMarks map[uint]float64
}

func newFakeAnswerRepo(answers ...*model.Answer) *fakeAnswerRepo {
	repo := &fakeAnswerRepo{nextID: 1, markCalls: map[uint]int{}, lastMarks: map[uint]float64{}}
	for _, a := range answers {
		repo.answers = append(repo.answers, a)
		if a.ID >= repo.nextID {
			repo.nextID = a.ID + 1
		}
	}
	return repo
}

func (r *fakeAnswerRepo) FindByStatusAndQuestion(testStatusID, questionID uint) (*model.Answer, error) {
	for _, answer := range r.answers {
		if answer.TestStatusID == testStatusID && answer.QuestionID == questionID {
			return answer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnswerRepo) FindAllByStatus(testStatusID uint) ([]model.Answer, error) {
	var out []model.Answer
	for _, answer := range r.answers {
		if answer.TestStatusID == testStatusID {
			out = append(out, *answer)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) Create(answer *model.Answer) error {
	answer.ID = r.nextID
	r.nextID++
	r.answers = append(r.answers, answer)
	return nil
}

func (r *fakeAnswerRepo) Update(answer *model.Answer) error { return nil }

func (r *fakeAnswerRepo) ReplaceSelectedOptions(answer *model.Answer, options []model.Option) error {
	answer.SelectedOptions = options
	return nil
}

func (r *fakeAnswerRepo) UpdateMarks(answerID uint, marks float64, remarks string) error {
	r.markCalls[answerID]++
	r.lastMarks[answerID] = marks
	return nil
}

type fakeEvalRepo struct {
	evaluations map[uint]*model.Evaluation
	nextID      uint
}

func newFakeEvalRepo(evaluations ...*model.Evaluation) *fakeEvalRepo {
	repo := &fakeEvalRepo{evaluations: map[uint]*model.Evaluation{}, nextID: 1}
	for _, e := range evaluations {
		repo.evaluations[e.TestStatusID] = e
		if e.ID >= repo.nextID {
			repo.nextID = e.ID + 1
		}
	}
	return repo
}

func (r *fakeEvalRepo) FindByTestStatusID(testStatusID uint) (*model.Evaluation, error) {
	evaluation, ok := r.evaluations[testStatusID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return evaluation, nil
}

func (r *fakeEvalRepo) Save(evaluation *model.Evaluation) error {
	if evaluation.ID == 0 {
		evaluation.ID = r.nextID
		r.nextID++
	}
	r.evaluations[evaluation.TestStatusID] = evaluation
	return nil
}

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Notify(event string, studentID, testID uint) {
	n.events = append(n.events, event)
}

type fakeGrader struct {
	results []GradeResult
	err     error
	calls   int
	sent    [][]GradeItem
}

func (g *fakeGrader) EvaluateBatch(ctx context.Context, items []GradeItem) ([]GradeResult, error) {
	g.calls++
	g.sent = append(g.sent, items)
	if g.err != nil {
		return nil, g.err
	}
	return g.results, nil
}
