package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelasfokus/fokus-backend/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `
	c.id, c.title, c.slug, c.duration_minutes, c.image_url, c.created_at,
	(SELECT COUNT(*) FROM questions q WHERE q.course_id = c.id) AS question_count`

// List retrieves all courses with their live question counts, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+`
		 FROM courses c
		 ORDER BY c.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.DurationMinutes, &c.ImageURL, &c.CreatedAt, &c.QuestionCount); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a single course.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+`
		 FROM courses c
		 WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Slug, &c.DurationMinutes, &c.ImageURL, &c.CreatedAt, &c.QuestionCount)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, slug, duration_minutes, image_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		c.Title, c.Slug, c.DurationMinutes, c.ImageURL,
	).Scan(&c.ID, &c.CreatedAt)
}

// Update replaces a course's editable fields.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET title = $1, slug = $2, duration_minutes = $3, image_url = $4
		 WHERE id = $5`,
		c.Title, c.Slug, c.DurationMinutes, c.ImageURL, c.ID)
	return err
}

// Delete removes a course and cascades to its materials and questions.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}
