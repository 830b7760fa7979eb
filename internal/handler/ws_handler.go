package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kelasfokus/fokus-backend/internal/exam"
	"github.com/kelasfokus/fokus-backend/internal/middleware"
	"github.com/kelasfokus/fokus-backend/internal/response"
	"github.com/kelasfokus/fokus-backend/internal/service"
	ws "github.com/kelasfokus/fokus-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live exam session state and accepts in-exam actions over
// a single WebSocket, so the countdown and answer sheet stay in sync without
// polling. REST remains the source of truth; this is a convenience
// transport over the same session.
type WSHandler struct {
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		examService: examService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// wsConn serializes writes to one connection. gorilla/websocket allows only
// one concurrent writer, and the state broadcaster races the action replies.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) send(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ws.WriteTyped(w.conn, v)
}

func (w *wsConn) sendError(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = ws.WriteError(w.conn, msg)
}

// ExamStream godoc
// WS /ws/v1/courses/:course_id/exam?token=...
// Upgrades to WebSocket. The server pushes a state snapshot every second and
// after every accepted action; the client sends answer/flag/navigate/finish.
func (h *WSHandler) ExamStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil || courseID < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	session, err := h.examService.GetSession(claims.UserID, courseID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wc := &wsConn{conn: conn}
	wsLog := h.log.With().
		Int64("user_id", claims.UserID).
		Int64("course_id", courseID).
		Logger()

	wsLog.Info().Msg("Exam stream connected")

	stop := make(chan struct{})
	defer close(stop)
	go h.broadcastState(wc, session, stop, wsLog)

	for {
		conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Exam stream closed")
			}
			return
		}

		var envelope ws.RequestEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			wc.sendError("malformed message")
			continue
		}

		switch envelope.Action {
		case ws.ActionAnswer:
			h.handleAnswer(wc, session, raw)
		case ws.ActionFlag:
			h.handleFlag(wc, session, raw)
		case ws.ActionNavigate:
			h.handleNavigate(wc, session, raw)
		case ws.ActionFinish:
			h.handleFinish(wc, session, wsLog)
		case ws.ActionPing:
			wc.send(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(envelope.Action)).Msg("Unknown action")
			wc.sendError("unknown action: " + string(envelope.Action))
		}
	}
}

// broadcastState pushes one snapshot per second until the session leaves
// IN_PROGRESS, then announces the final score and stops. A finish triggered
// over REST or by the countdown reaches the client through this loop.
func (h *WSHandler) broadcastState(wc *wsConn, session *exam.Session, stop <-chan struct{}, wsLog zerolog.Logger) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			state := session.Snapshot()
			if err := wc.send(ws.StateEvent{Event: ws.EventState, State: state}); err != nil {
				return
			}
			switch state.Phase {
			case exam.PhaseFinished:
				h.sendFinished(wc, session, state.RemainingSeconds == 0)
				wsLog.Info().Msg("Exam finished, stream idle")
				return
			case exam.PhaseAbandoned:
				return
			}
		}
	}
}

func (h *WSHandler) handleAnswer(wc *wsConn, session *exam.Session, raw []byte) {
	var req ws.AnswerRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.QuestionID == 0 || req.OptionKey == "" {
		wc.sendError("question_id and option_key are required")
		return
	}

	if err := session.SelectAnswer(req.QuestionID, req.OptionKey); err != nil {
		wc.sendError(err.Error())
		return
	}
	wc.send(ws.StateEvent{Event: ws.EventState, State: session.Snapshot()})
}

func (h *WSHandler) handleFlag(wc *wsConn, session *exam.Session, raw []byte) {
	var req ws.FlagRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.QuestionID == 0 {
		wc.sendError("question_id is required")
		return
	}

	if err := session.ToggleFlag(req.QuestionID); err != nil {
		wc.sendError(err.Error())
		return
	}
	wc.send(ws.StateEvent{Event: ws.EventState, State: session.Snapshot()})
}

func (h *WSHandler) handleNavigate(wc *wsConn, session *exam.Session, raw []byte) {
	var req ws.NavigateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		wc.sendError("malformed navigate payload")
		return
	}

	if req.Index != nil {
		session.Goto(*req.Index)
	} else {
		session.Move(req.Delta)
	}
	wc.send(ws.StateEvent{Event: ws.EventState, State: session.Snapshot()})
}

func (h *WSHandler) handleFinish(wc *wsConn, session *exam.Session, wsLog zerolog.Logger) {
	if _, err := session.Finish(false); err != nil {
		wc.sendError(err.Error())
		return
	}
	wsLog.Info().Msg("Exam finished over stream")
	h.sendFinished(wc, session, false)
}

func (h *WSHandler) sendFinished(wc *wsConn, session *exam.Session, auto bool) {
	result, err := session.Result()
	if err != nil {
		return
	}
	wc.send(ws.FinishedEvent{
		Event:            ws.EventFinished,
		Score:            result.Score,
		CorrectCount:     result.CorrectCount,
		WrongCount:       result.WrongCount,
		EmptyCount:       result.EmptyCount,
		AutoFinished:     auto,
		SubmissionFailed: session.SubmissionFailed(),
		Policy:           session.Policy().Name(),
	})
}
