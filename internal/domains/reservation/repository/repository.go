package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jam/infras/otel"
	"jam/infras/postgres"
	"jam/internal/domains/reservation/model"
	"jam/shared/constant"
	gDto "jam/shared/dto"
	"jam/shared/failure"
	"jam/shared/logger"
	gRepo "jam/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// roomLockQuery serializes writers per room without blocking other rooms. The
// advisory lock is transaction scoped and released on commit or rollback.
const roomLockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

const conflictQueryBase = `
	SELECT id, room_id, owner_id, start_time, end_time, total_amount, status,
	       created_at, modified_at, created_by, modified_by
	FROM reservations
	WHERE room_id = $1
	  AND status = 'confirmed'
	  AND start_time < $3
	  AND end_time > $2`

const conflictQueryExclude = `
	  AND id <> $4::uuid`

const conflictQueryOrder = `
	ORDER BY start_time`

// buildConflictQuery appends the exclusion clause only when an id is given.
// The parameter must be cast explicitly: lib/pq sends it untyped, and
// postgres cannot resolve a bare text parameter against the uuid column.
func buildConflictQuery(roomID string, interval model.Interval, excludeID string) (string, []any) {
	query := conflictQueryBase
	args := []any{roomID, interval.Start, interval.End}

	if excludeID != constant.Empty {
		query += conflictQueryExclude
		args = append(args, excludeID)
	}

	return query + conflictQueryOrder, args
}

const getForUpdateQuery = `
	SELECT id, room_id, owner_id, start_time, end_time, total_amount, status,
	       created_at, modified_at, created_by, modified_by
	FROM reservations
	WHERE id = $1
	FOR UPDATE`

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	WithRoomLock(ctx context.Context, roomID string, fn func(ctx context.Context, tx *sqlx.Tx) error) error
	FindConflicts(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]model.Reservation, error)
	FindConflictsTx(ctx context.Context, tx *sqlx.Tx, roomID string, interval model.Interval, excludeID string) ([]model.Reservation, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// WithRoomLock runs fn inside a write transaction that holds the room's
// advisory lock. Commit and infrastructure errors come back as retryable
// storage failures; errors from fn pass through unchanged.
func (repo *repositoryImpl) WithRoomLock(ctx context.Context, roomID string, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".WithRoomLock")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return failure.Storage(fmt.Errorf("failed to begin transaction: %w", err)) //nolint:wrapcheck
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if _, err = tx.ExecContext(ctx, roomLockQuery, roomID); err != nil {
		_ = tx.Rollback()
		logger.ErrorWithStack(err)

		return failure.Storage(fmt.Errorf("failed to acquire room lock: %w", err)) //nolint:wrapcheck
	}

	if err = fn(ctx, tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return storageFailure(err)
	}

	return nil
}

func (repo *repositoryImpl) FindConflicts(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".FindConflicts")
	defer scope.End()

	return repo.findConflicts(ctx, repo.db.Read, roomID, interval, excludeID)
}

func (repo *repositoryImpl) FindConflictsTx(ctx context.Context, tx *sqlx.Tx, roomID string, interval model.Interval, excludeID string) ([]model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".FindConflictsTx")
	defer scope.End()

	return repo.findConflicts(ctx, tx, roomID, interval, excludeID)
}

type selecter interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (repo *repositoryImpl) findConflicts(ctx context.Context, q selecter, roomID string, interval model.Interval, excludeID string) ([]model.Reservation, error) {
	var conflicts []model.Reservation

	query, args := buildConflictQuery(roomID, interval, excludeID)

	err := q.SelectContext(ctx, &conflicts, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, storageFailure(fmt.Errorf("failed to find conflicting reservations (%s): %w", model.EntityName, err))
	}

	return conflicts, nil
}

func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetForUpdateTx")
	defer scope.End()

	var reservation model.Reservation

	err := tx.GetContext(ctx, &reservation, getForUpdateQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return reservation, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return reservation, storageFailure(fmt.Errorf("failed to lock reservation row (%s): %w", model.EntityName, err))
	}

	return reservation, nil
}

// storageFailure classifies postgres faults. Aborted transactions, deadlocks
// and connection problems are retryable storage failures; a unique violation
// means another writer got there first and maps to a conflict.
func storageFailure(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict(pqErr.Message) //nolint:wrapcheck
		}
	}

	return failure.Storage(err) //nolint:wrapcheck
}
