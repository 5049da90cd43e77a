package service

import "github.com/rs/zerolog/log"

// Notification events emitted by the exam core.
const (
	EventTestAssigned  = "test_assigned"
	EventTestSubmitted = "test_submitted"
	EventTestEvaluated = "test_evaluated"
)

// Notifier receives fire-and-forget signals on attempt milestones.
// Implementations must never block the caller; failures are swallowed.
type Notifier interface {
	Notify(event string, studentID, testID uint)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that just records events. The real
// deployment swaps in the messaging gateway here.
func NewLogNotifier() Notifier {
	return &logNotifier{}
}

func (n *logNotifier) Notify(event string, studentID, testID uint) {
	log.Info().Str("event", event).Uint("studentID", studentID).Uint("testID", testID).Msg("notification emitted")
}
