package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kelasfokus/fokus-backend/internal/response"
	"github.com/kelasfokus/fokus-backend/internal/service"
)

// CourseHandler serves the student-facing course catalog and study materials.
type CourseHandler struct {
	courseService   *service.CourseService
	materialService *service.MaterialService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, materialService *service.MaterialService) *CourseHandler {
	return &CourseHandler{courseService: courseService, materialService: materialService}
}

// ListCourses godoc
// GET /api/v1/courses
// Returns all courses with their question counts.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse godoc
// GET /api/v1/courses/:course_id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// ListMaterials godoc
// GET /api/v1/courses/:course_id/materials
// Returns a course's study materials in reading order. Content is raw
// markdown; the client renders it.
func (h *CourseHandler) ListMaterials(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	materials, err := h.materialService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"materials": materials})
}

// parseIDParam parses a numeric path parameter, writing the error response
// itself on failure.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
