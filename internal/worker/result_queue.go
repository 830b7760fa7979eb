package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kelasfokus/fokus-backend/internal/config"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// resultPayload is the wire format of the persist_results_queue entries.
type resultPayload struct {
	UserID       int64     `json:"user_id"`
	CourseID     int64     `json:"course_id"`
	Score        int       `json:"score"`
	CorrectCount int       `json:"correct_answers"`
	WrongCount   int       `json:"wrong_answers"`
	EmptyCount   int       `json:"empty_answers"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResultQueue is the Redis-backed implementation of exam.ResultSink: finished
// sessions push their result onto a list that ResultWorker drains into
// PostgreSQL. A push failure is surfaced to the session controller, which
// keeps the score viewable locally.
type ResultQueue struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewResultQueue creates a new ResultQueue.
func NewResultQueue(rdb *redis.Client, log zerolog.Logger) *ResultQueue {
	return &ResultQueue{
		rdb: rdb,
		log: log.With().Str("component", "result_queue").Logger(),
	}
}

// Submit enqueues one finalized result for persistence.
func (q *ResultQueue) Submit(ctx context.Context, result *model.ExamResult) error {
	raw, err := json.Marshal(resultPayload{
		UserID:       result.UserID,
		CourseID:     result.CourseID,
		Score:        result.Score,
		CorrectCount: result.CorrectCount,
		WrongCount:   result.WrongCount,
		EmptyCount:   result.EmptyCount,
		CreatedAt:    result.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if err := q.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw).Err(); err != nil {
		return fmt.Errorf("enqueue result: %w", err)
	}
	return nil
}
