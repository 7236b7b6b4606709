package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveSubmission inserts a FeedbackReports row and upserts the child's
// ChildCurricula row in one transaction: both commit or both fail, per
// the atomicity invariant on a submission.
func (s *Store) SaveSubmission(ctx context.Context, report FeedbackReport, curriculum CurriculumRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save submission: begin tx: %w", err)
	}
	defer tx.Rollback()

	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAtUTC.IsZero() {
		report.CreatedAtUTC = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO "FeedbackReports" ("Id", "SubmissionId", "Score0_100", "Weakness", "Recommendation", "CreatedAtUtc")
		VALUES (?, ?, ?, ?, ?, ?)
	`), report.ID, report.SubmissionID, report.Score, report.Weakness, report.Recommendation, report.CreatedAtUTC)
	if err != nil {
		return fmt.Errorf("save submission: insert report: %w", err)
	}

	if curriculum.ID == "" {
		curriculum.ID = uuid.NewString()
	}
	curriculum.UpdatedAtUTC = time.Now().UTC()
	// SuccessStreak is reset to 0 on every upsert, matching the source
	// worker's behavior; preserved verbatim, see DESIGN.md open questions.
	// Difficulty is intentionally omitted from DO UPDATE SET: it is fixed
	// at whatever the first insert set it to, matching the original.
	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO "ChildCurricula" ("Id", "ChildId", "FocusPhonemesCsv", "Difficulty", "SuccessStreak", "UpdatedAtUtc")
		VALUES (?, ?, ?, ?, 0, ?)
		ON CONFLICT ("ChildId") DO UPDATE SET
			"FocusPhonemesCsv" = excluded."FocusPhonemesCsv",
			"SuccessStreak" = 0,
			"UpdatedAtUtc" = excluded."UpdatedAtUtc"
	`), curriculum.ID, curriculum.ChildID, curriculum.FocusPhonemesCSV, curriculum.Difficulty, curriculum.UpdatedAtUTC)
	if err != nil {
		return fmt.Errorf("save submission: upsert curriculum: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save submission: commit: %w", err)
	}
	return nil
}
