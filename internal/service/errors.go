package service

import "errors"

// Failure taxonomy for the exam core. Controllers branch on these with
// errors.Is and surface a machine-readable code, so callers can tell
// "you can't take this" from "you ran out of time" from "already submitted".
var (
	// ErrNotEligible: the student is not enrolled in any course containing
	// the test. Not retryable until enrollment changes.
	ErrNotEligible = errors.New("student is not eligible for this test")

	// ErrExpired: the assignment deadline or the per-attempt window passed.
	// Terminal for that attempt.
	ErrExpired = errors.New("test time has expired")

	// ErrInvalidTransition: a state-machine guard was violated, e.g. submit
	// while pending or saving answers after completion.
	ErrInvalidTransition = errors.New("operation not allowed in current attempt state")

	// ErrInvalidQuestion: the question does not belong to the attempt's test.
	ErrInvalidQuestion = errors.New("question does not belong to this test")

	// ErrInvalidOption: a selected option does not belong to the question.
	ErrInvalidOption = errors.New("option does not belong to this question")

	// ErrTooManyOptions: more than one option selected for a single-answer question.
	ErrTooManyOptions = errors.New("question accepts only one selected option")

	// ErrNotCompleted: evaluation requested before the attempt was submitted.
	ErrNotCompleted = errors.New("test attempt is not completed yet")

	// ErrGradingUnavailable: the subjective grader failed or returned
	// unusable data. Recorded on the evaluation row; retryable.
	ErrGradingUnavailable = errors.New("subjective grading is unavailable")

	// ErrUnauthenticated: bearer token could not be resolved to an identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)
