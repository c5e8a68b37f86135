package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triviahub/trivia-api/internal/trivia"
)

const questionColumns = "id, question, answer, category_id, difficulty"

// QuestionRepository implements trivia.QuestionStore over Postgres.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListAll returns every question ordered by id, the stable listing order
// pagination depends on.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+` FROM questions ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return scanQuestions(rows)
}

// ByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+` FROM questions WHERE category_id = $1 ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list questions by category: %w", err)
	}
	return scanQuestions(rows)
}

// SearchText returns questions whose text contains term, case-insensitive,
// ordered by id. An empty term matches everything.
func (r *QuestionRepository) SearchText(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+` FROM questions WHERE question ILIKE '%' || $1 || '%' ORDER BY id
	`, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return scanQuestions(rows)
}

// Get returns one question by id, or nil when absent.
func (r *QuestionRepository) Get(ctx context.Context, id int64) (*trivia.Question, error) {
	var q trivia.Question
	err := r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+` FROM questions WHERE id = $1
	`, id).Scan(&q.ID, &q.Text, &q.Answer, &q.Category, &q.Difficulty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return &q, nil
}

// Insert stores a new question and returns it with its assigned id. The
// category must resolve to an existing one and the difficulty must be in
// range.
func (r *QuestionRepository) Insert(ctx context.Context, in trivia.NewQuestion) (trivia.Question, error) {
	if in.Text == "" || in.Answer == "" || in.Category == 0 || in.Difficulty == 0 {
		return trivia.Question{}, trivia.Errf(trivia.KindValidation, "question, answer, category and difficulty are required")
	}
	if in.Difficulty < trivia.MinDifficulty || in.Difficulty > trivia.MaxDifficulty {
		return trivia.Question{}, trivia.Errf(trivia.KindValidation, "difficulty %d out of range", in.Difficulty)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)
	`, in.Category).Scan(&exists); err != nil {
		return trivia.Question{}, fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return trivia.Question{}, trivia.Errf(trivia.KindValidation, "category %d does not exist", in.Category)
	}

	q := trivia.Question{
		Text:       in.Text,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category_id, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.Text, in.Answer, in.Category, in.Difficulty).Scan(&q.ID)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// Delete removes a question, reporting whether a row existed.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete question: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanQuestions(rows pgx.Rows) ([]trivia.Question, error) {
	defer rows.Close()

	var qs []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return qs, nil
}
