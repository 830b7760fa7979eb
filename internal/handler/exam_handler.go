package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kelasfokus/fokus-backend/internal/exam"
	"github.com/kelasfokus/fokus-backend/internal/middleware"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/response"
	"github.com/kelasfokus/fokus-backend/internal/service"
	"github.com/kelasfokus/fokus-backend/internal/validator"
)

// ExamHandler exposes the timed exam session over REST. Every route operates
// on the caller's own live session for the course in the path.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// StartExam godoc
// POST /api/v1/courses/:course_id/exam
// Starts a fresh attempt, replacing any previous one. Free-tier accounts get
// the trial question subset.
func (h *ExamHandler) StartExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	session, trial, err := h.examService.StartSession(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, exam.ErrNoQuestions) {
			response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	state := session.Snapshot()
	response.Success(c, http.StatusCreated, gin.H{
		"state": state,
		"paper": session.Paper(),
		"trial": trial,
	})
}

// GetState godoc
// GET /api/v1/courses/:course_id/exam
// Returns the live session snapshot: phase, cursor, countdown, answers, flags.
func (h *ExamHandler) GetState(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": session.Snapshot()})
}

// GetPaper godoc
// GET /api/v1/courses/:course_id/exam/paper
// Returns the question set with answer keys and explanations stripped.
func (h *ExamHandler) GetPaper(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"paper": session.Paper()})
}

// SelectAnswer godoc
// POST /api/v1/courses/:course_id/exam/answer
// Records (or overwrites) the choice for one question. The cursor does not
// move.
func (h *ExamHandler) SelectAnswer(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req model.SelectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := session.SelectAnswer(req.QuestionID, req.OptionKey); err != nil {
		h.failFromSessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": session.Snapshot()})
}

// ToggleFlag godoc
// POST /api/v1/courses/:course_id/exam/flag
func (h *ExamHandler) ToggleFlag(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req model.ToggleFlagRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := session.ToggleFlag(req.QuestionID); err != nil {
		h.failFromSessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": session.Snapshot()})
}

// Navigate godoc
// POST /api/v1/courses/:course_id/exam/navigate
// Moves the cursor, absolute (index) or relative (delta). Out-of-range
// targets clamp to the nearest valid question.
func (h *ExamHandler) Navigate(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var index int
	if req.Index != nil {
		index = session.Goto(*req.Index)
	} else {
		index = session.Move(req.Delta)
	}
	response.Success(c, http.StatusOK, gin.H{"current_index": index})
}

// FinishExam godoc
// POST /api/v1/courses/:course_id/exam/finish
// Scores the attempt. Calling it again returns the same result; the client
// is expected to have shown its confirmation dialog before calling.
func (h *ExamHandler) FinishExam(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	result, err := session.Finish(false)
	if err != nil {
		h.failFromSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"result":            result,
		"submission_failed": session.SubmissionFailed(),
	})
}

// Review godoc
// GET /api/v1/courses/:course_id/exam/review
// Full question set with keys, explanations and the user's answers. Only
// available once the session finished.
func (h *ExamHandler) Review(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	items, result, err := session.Review()
	if err != nil {
		h.failFromSessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":  items,
		"result": result,
	})
}

// AbandonExam godoc
// DELETE /api/v1/courses/:course_id/exam
// Tears the session down without recording a result.
func (h *ExamHandler) AbandonExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return
	}

	h.examService.AbandonSession(claims.UserID, courseID)
	response.Success(c, http.StatusOK, gin.H{})
}

// ResultHistory godoc
// GET /api/v1/results
// The caller's persisted exam results, newest first.
func (h *ExamHandler) ResultHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	results, err := h.examService.ResultHistory(c.Request.Context(), claims.UserID, 50)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// session resolves the caller's live session for the course in the path,
// writing the error response itself on failure.
func (h *ExamHandler) session(c *gin.Context) (*exam.Session, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}
	courseID, ok := parseIDParam(c, "course_id")
	if !ok {
		return nil, false
	}

	session, err := h.examService.GetSession(claims.UserID, courseID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
		return nil, false
	}
	return session, true
}

// failFromSessionError maps session controller errors onto API error codes.
func (h *ExamHandler) failFromSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, exam.ErrSessionFinished):
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
	case errors.Is(err, exam.ErrNotFinished):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotDone)
	case errors.Is(err, exam.ErrUnknownQuestion):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, exam.ErrInvalidSelection):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidSelection)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
