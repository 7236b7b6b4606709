package store

import "time"

// FeedbackReport mirrors the FeedbackReports row the core inserts.
type FeedbackReport struct {
	ID             string
	SubmissionID   string
	Score          int
	Weakness       string
	Recommendation string
	CreatedAtUTC   time.Time
}

// CurriculumRow mirrors the ChildCurricula row the core upserts.
type CurriculumRow struct {
	ID               string
	ChildID          string
	FocusPhonemesCSV string
	Difficulty       int
	SuccessStreak    int
	UpdatedAtUTC     time.Time
}

// ChildLexiconRow mirrors a read-only child_lexicon row.
type ChildLexiconRow struct {
	ChildID  string
	Phonemes []string // nil if not set
	Words    []string // nil if not set
}
