package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelasfokus/fokus-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker consumes persist_results_queue and batch-inserts exam results
// into PostgreSQL.
type ResultWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewResultWorker creates a new ResultWorker.
func NewResultWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "result_worker").Logger(),
	}
}

// Start begins the worker loop with batching. Call in a goroutine.
func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*resultPayload, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p resultPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

func (w *ResultWorker) flushSafe(ctx context.Context, batch []*resultPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsert(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk result insert failed, using fallback")

		for _, p := range batch {
			if err := w.insertSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Msg("insertSingle failed, requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
	}
}

// bulkInsert writes the whole batch in one round trip using UNNEST.
func (w *ResultWorker) bulkInsert(ctx context.Context, batch []*resultPayload) error {
	n := len(batch)

	userIDs := make([]int64, 0, n)
	courseIDs := make([]int64, 0, n)
	scores := make([]int, 0, n)
	corrects := make([]int, 0, n)
	wrongs := make([]int, 0, n)
	empties := make([]int, 0, n)
	createdAts := make([]time.Time, 0, n)

	for _, p := range batch {
		userIDs = append(userIDs, p.UserID)
		courseIDs = append(courseIDs, p.CourseID)
		scores = append(scores, p.Score)
		corrects = append(corrects, p.CorrectCount)
		wrongs = append(wrongs, p.WrongCount)
		empties = append(empties, p.EmptyCount)
		createdAts = append(createdAts, p.CreatedAt)
	}

	query := `
		INSERT INTO exam_results
			(user_id, course_id, score, correct_answers, wrong_answers, empty_answers, created_at)
		SELECT * FROM UNNEST(
			$1::bigint[],
			$2::bigint[],
			$3::int[],
			$4::int[],
			$5::int[],
			$6::int[],
			$7::timestamptz[]
		)
	`

	_, err := w.pool.Exec(ctx, query, userIDs, courseIDs, scores, corrects, wrongs, empties, createdAts)
	return err
}

// insertSingle is the fallback path when the bulk insert fails.
func (w *ResultWorker) insertSingle(ctx context.Context, p *resultPayload) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO exam_results
			(user_id, course_id, score, correct_answers, wrong_answers, empty_answers, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.UserID, p.CourseID, p.Score, p.CorrectCount, p.WrongCount, p.EmptyCount, p.CreatedAt,
	)
	return err
}
