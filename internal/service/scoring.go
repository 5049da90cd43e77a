package service

// ScoreMCQ computes the marks for one MCQ answer. Proportional credit is
// given per correct option selected; each wrongly selected option deducts
// the section's negative-marking factor. The result is clamped to
// [0, questionMarks] so a misconfigured factor can never push a score
// negative or above the question maximum. A question with no correct
// options scores 0 regardless of selection.
//
// Single- and multi-answer questions share this formula; single-answer
// simply has at most one selected id.
func ScoreMCQ(questionMarks float64, correctIDs, selectedIDs []uint, negativeFactor float64) float64 {
	if len(selectedIDs) == 0 {
		return 0
	}

	totalCorrect := len(correctIDs)
	if totalCorrect == 0 {
		return 0
	}

	correctSet := make(map[uint]struct{}, totalCorrect)
	for _, id := range correctIDs {
		correctSet[id] = struct{}{}
	}

	selectedCorrect := 0
	for _, id := range selectedIDs {
		if _, ok := correctSet[id]; ok {
			selectedCorrect++
		}
	}

	marks := questionMarks * float64(selectedCorrect) / float64(totalCorrect)

	wrong := len(selectedIDs) - selectedCorrect
	if wrong > 0 && negativeFactor > 0 {
		marks -= float64(wrong) * negativeFactor
	}

	if marks < 0 {
		marks = 0
	}
	if marks > questionMarks {
		marks = questionMarks
	}
	return marks
}
