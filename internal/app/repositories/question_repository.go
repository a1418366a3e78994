package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
	"github.com/vidyavichar/vidyavichar/internal/pkg/dberrors"
)

// ErrQuestionCodeTaken signals a question code collision so the caller can
// regenerate and retry.
var ErrQuestionCodeTaken = errors.New("question code already taken")

// QuestionRepository handles database operations for questions and upvotes
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts the question with the asker's implicit upvote in one
// transaction.
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO questions (question_code, lecture_id, student_id, question_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, asked_at, is_answered, is_important, upvotes`,
		question.QuestionCode, question.LectureID, question.StudentID, question.QuestionText,
	).Scan(&question.ID, &question.AskedAt, &question.IsAnswered,
		&question.IsImportant, &question.Upvotes)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "questions_question_code_key") {
			return ErrQuestionCodeTaken
		}
		return fmt.Errorf("error creating question: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO question_upvotes (question_id, student_id) VALUES ($1, $2)`,
		question.ID, question.StudentID)
	if err != nil {
		return fmt.Errorf("error recording upvote: %w", err)
	}
	question.UpvotedBy = []int64{question.StudentID}

	return tx.Commit(ctx)
}

const questionColumns = `id, question_code, lecture_id, student_id, question_text, asked_at, is_answered, is_important, upvotes`

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	err := row.Scan(&q.ID, &q.QuestionCode, &q.LectureID, &q.StudentID,
		&q.QuestionText, &q.AskedAt, &q.IsAnswered, &q.IsImportant, &q.Upvotes)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetByCode retrieves a question by its public question code.
// Answers and upvoters are not populated; use ListByLecture for full rows.
func (r *QuestionRepository) GetByCode(ctx context.Context, questionCode string) (*models.Question, error) {
	question, err := scanQuestion(r.db.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE question_code = $1`, questionCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}
	return question, nil
}

// ListByLecture lists a lecture's questions, oldest first, with answers and
// upvoter lists populated.
func (r *QuestionRepository) ListByLecture(ctx context.Context, lectureID int64) ([]*models.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE lecture_id = $1 ORDER BY asked_at, id`,
		lectureID)
}

// ListByLectureAndStudent lists the questions a student asked in a lecture
func (r *QuestionRepository) ListByLectureAndStudent(ctx context.Context, lectureID, studentID int64) ([]*models.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE lecture_id = $1 AND student_id = $2 ORDER BY asked_at, id`,
		lectureID, studentID)
}

func (r *QuestionRepository) list(ctx context.Context, sql string, args ...any) ([]*models.Question, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, q := range questions {
		if err := r.populate(ctx, q); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

func (r *QuestionRepository) populate(ctx context.Context, q *models.Question) error {
	upRows, err := r.db.Query(ctx,
		`SELECT student_id FROM question_upvotes WHERE question_id = $1`, q.ID)
	if err != nil {
		return fmt.Errorf("error listing upvoters: %w", err)
	}
	defer upRows.Close()
	for upRows.Next() {
		var studentID int64
		if err := upRows.Scan(&studentID); err != nil {
			return fmt.Errorf("error scanning upvoter: %w", err)
		}
		q.UpvotedBy = append(q.UpvotedBy, studentID)
	}
	if err := upRows.Err(); err != nil {
		return err
	}

	answers, err := listAnswersForQuestion(ctx, r.db, q.ID)
	if err != nil {
		return err
	}
	q.Answers = answers
	return nil
}

// UpdateText replaces the question text. The answered-question edit lock is
// enforced by the caller before this runs.
func (r *QuestionRepository) UpdateText(ctx context.Context, id int64, text string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE questions SET question_text = $2 WHERE id = $1`, id, text)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// Delete removes the question together with its answer rows. Upvote and
// link rows cascade; the answers themselves need the explicit join delete.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM answers
		WHERE id IN (SELECT answer_id FROM question_answers WHERE question_id = $1)`, id)
	if err != nil {
		return fmt.Errorf("error deleting answers: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return tx.Commit(ctx)
}

// CountUnansweredByStudent counts a student's open questions across all
// lectures. Feeds the student dashboard overview.
func (r *QuestionRepository) CountUnansweredByStudent(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE student_id = $1 AND NOT is_answered`,
		studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unanswered questions: %w", err)
	}
	return count, nil
}
