package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelasfokus/fokus-backend/internal/model"
)

// MaterialRepository handles study material data access.
type MaterialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

// ListByCourse retrieves all materials for a course in reading order.
func (r *MaterialRepository) ListByCourse(ctx context.Context, courseID int64) ([]model.Material, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, title, content, video_url, order_num, created_at
		 FROM materials WHERE course_id = $1
		 ORDER BY order_num, id`, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []model.Material
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Content, &m.VideoURL, &m.OrderNum, &m.CreatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// Create inserts a new material.
func (r *MaterialRepository) Create(ctx context.Context, m *model.Material) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO materials (course_id, title, content, video_url, order_num)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		m.CourseID, m.Title, m.Content, m.VideoURL, m.OrderNum,
	).Scan(&m.ID, &m.CreatedAt)
}

// Update replaces a material's editable fields.
func (r *MaterialRepository) Update(ctx context.Context, m *model.Material) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE materials
		 SET title = $1, content = $2, video_url = $3, order_num = $4
		 WHERE id = $5`,
		m.Title, m.Content, m.VideoURL, m.OrderNum, m.ID)
	return err
}

// Delete removes a material.
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	return err
}
