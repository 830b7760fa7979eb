package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelasfokus/fokus-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByCourse retrieves all questions for a course ordered by ascending id.
// The order is stable and deterministic so that session navigation is
// reproducible across requests.
func (r *QuestionRepository) ListByCourse(ctx context.Context, courseID int64) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, category, question_text, image_url, options, correct_answer, explanation
		 FROM questions WHERE course_id = $1
		 ORDER BY id`, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var rawOptions []byte
		if err := rows.Scan(&q.ID, &q.CourseID, &q.Category, &q.Text, &q.ImageURL, &rawOptions, &q.CorrectKey, &q.Explanation); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options of question %d: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question with its options as JSONB.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	rawOptions, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (course_id, category, question_text, image_url, options, correct_answer, explanation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		q.CourseID, q.Category, q.Text, q.ImageURL, rawOptions, q.CorrectKey, q.Explanation,
	).Scan(&q.ID)
}

// Update replaces a question's content and options.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	rawOptions, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE questions
		 SET category = $1, question_text = $2, image_url = $3, options = $4, correct_answer = $5, explanation = $6
		 WHERE id = $7`,
		q.Category, q.Text, q.ImageURL, rawOptions, q.CorrectKey, q.Explanation, q.ID)
	return err
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
