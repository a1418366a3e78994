package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
)

// AnswerRepository handles database operations for answers and their
// question links
type AnswerRepository struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create inserts the answer, links it to the question and marks the
// question answered, all in one transaction.
func (r *AnswerRepository) Create(ctx context.Context, questionID int64, answer *models.Answer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO answers (answerer_name, answer_text, answer_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		answer.AnswererName, answer.AnswerText, answer.AnswerType,
	).Scan(&answer.ID, &answer.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating answer: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO question_answers (question_id, answer_id) VALUES ($1, $2)`,
		questionID, answer.ID)
	if err != nil {
		return fmt.Errorf("error linking answer: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE questions SET is_answered = TRUE WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("error marking question answered: %w", err)
	}

	return tx.Commit(ctx)
}

// ListByQuestion lists a question's answers in creation order
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	return listAnswersForQuestion(ctx, r.db, questionID)
}

func listAnswersForQuestion(ctx context.Context, db *pgxpool.Pool, questionID int64) ([]*models.Answer, error) {
	rows, err := db.Query(ctx, `
		SELECT a.id, a.answerer_name, a.answer_text, a.answer_type, a.created_at
		FROM answers a
		JOIN question_answers qa ON qa.answer_id = a.id
		WHERE qa.question_id = $1
		ORDER BY a.created_at, a.id`, questionID)
	if err != nil {
		return nil, fmt.Errorf("error listing answers: %w", err)
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.AnswererName, &a.AnswerText, &a.AnswerType, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning answer: %w", err)
		}
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

// DeleteAllForQuestion clears every answer of a question and reopens it.
// This is the student-side "delete my answers" operation.
func (r *AnswerRepository) DeleteAllForQuestion(ctx context.Context, questionID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM answers
		WHERE id IN (SELECT answer_id FROM question_answers WHERE question_id = $1)`,
		questionID)
	if err != nil {
		return fmt.Errorf("error deleting answers: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE questions SET is_answered = FALSE WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("error reopening question: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteByID removes a single answer; question links cascade. The answered
// flag on linked questions is intentionally left alone — deleting one answer
// does not reopen a question.
func (r *AnswerRepository) DeleteByID(ctx context.Context, answerID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM answers WHERE id = $1`, answerID)
	if err != nil {
		return fmt.Errorf("error deleting answer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAnswerNotFound
	}
	return nil
}
