package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/response"
	"github.com/kelasfokus/fokus-backend/internal/service"
	"github.com/kelasfokus/fokus-backend/internal/validator"
)

// AdminHandler handles the admin console's content CRUD: courses, study
// materials and the question bank.
type AdminHandler struct {
	courseService   *service.CourseService
	materialService *service.MaterialService
	questionService *service.QuestionService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	courseService *service.CourseService,
	materialService *service.MaterialService,
	questionService *service.QuestionService,
) *AdminHandler {
	return &AdminHandler{
		courseService:   courseService,
		materialService: materialService,
		questionService: questionService,
	}
}

// ─── Courses ────────────────────────────────────────────────────────

// CreateCourse godoc
// POST /api/v1/admin/courses
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// UpdateCourse godoc
// PUT /api/v1/admin/courses/:course_id
func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), courseID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// DeleteCourse godoc
// DELETE /api/v1/admin/courses/:course_id
// Cascades to the course's materials, questions and results.
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), courseID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ─── Materials ──────────────────────────────────────────────────────

// CreateMaterial godoc
// POST /api/v1/admin/courses/:course_id/materials
func (h *AdminHandler) CreateMaterial(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	var req model.CreateMaterialRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	material, err := h.materialService.Create(c.Request.Context(), courseID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"material": material})
}

// UpdateMaterial godoc
// PUT /api/v1/admin/materials/:material_id
func (h *AdminHandler) UpdateMaterial(c *gin.Context) {
	materialID, ok := parseIDParam(c, "material_id")
	if !ok {
		return
	}

	var req model.CreateMaterialRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), materialID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"material": material})
}

// DeleteMaterial godoc
// DELETE /api/v1/admin/materials/:material_id
func (h *AdminHandler) DeleteMaterial(c *gin.Context) {
	materialID, ok := parseIDParam(c, "material_id")
	if !ok {
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), materialID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ─── Questions ──────────────────────────────────────────────────────

// ListQuestions godoc
// GET /api/v1/admin/courses/:course_id/questions
// Full question rows, answer keys included.
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	questions, err := h.questionService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// CreateQuestion godoc
// POST /api/v1/admin/courses/:course_id/questions
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), courseID, &req)
	if err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidPayload)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// UpdateQuestion godoc
// PUT /api/v1/admin/courses/:course_id/questions/:question_id
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "question_id")
	if !ok {
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), questionID, courseID, &req)
	if err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidPayload)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// DeleteQuestion godoc
// DELETE /api/v1/admin/questions/:question_id
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c, "question_id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), questionID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
