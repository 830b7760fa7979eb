package model

import "time"

// Material is one study module of a course. Content is raw markdown; the
// client is responsible for rendering it.
type Material struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	VideoURL  *string   `json:"video_url,omitempty"`
	OrderNum  int       `json:"order_num"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMaterialRequest is the admin payload for adding a material to a course.
type CreateMaterialRequest struct {
	Title    string  `json:"title" binding:"required,min=1,max=200"`
	Content  string  `json:"content" binding:"required"`
	VideoURL *string `json:"video_url" binding:"omitempty,url"`
	OrderNum int     `json:"order_num" binding:"min=0"`
}
