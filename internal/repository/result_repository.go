package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelasfokus/fokus-backend/internal/model"
)

// ResultRow joins an exam result with its course title for history views.
type ResultRow struct {
	model.ExamResult
	CourseTitle string `json:"course_title"`
}

// ResultRepository reads persisted exam results. Writes flow through the
// Redis-backed result worker, never through this repository.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// ListByUser retrieves a user's result history, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]ResultRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT er.id, er.user_id, er.course_id, er.score,
		        er.correct_answers, er.wrong_answers, er.empty_answers, er.created_at,
		        c.title
		 FROM exam_results er
		 JOIN courses c ON c.id = er.course_id
		 WHERE er.user_id = $1
		 ORDER BY er.created_at DESC
		 LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ResultRow
	for rows.Next() {
		var row ResultRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.CourseID, &row.Score,
			&row.CorrectCount, &row.WrongCount, &row.EmptyCount, &row.CreatedAt,
			&row.CourseTitle); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
