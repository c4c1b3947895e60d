package reconciliation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const table = "partial_commits"

var columns = []string{
	"id",
	"idempotency_key",
	"user_id",
	"property_id",
	"account_reference",
	"amount",
	"check_in",
	"check_out",
	"extra_bedding",
	"deep_clean",
	"cause",
	"status",
	"created_at",
	"resolved_at",
}

// Repository журнал частичных фиксаций (оплата прошла, бронь не создана)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись. На один ключ идемпотентности приходится одна запись:
// повтор с тем же ключом обновляет открытую запись, а rec.ID и rec.CreatedAt берутся из нее.
// Если запись с этим ключом уже закрыта, возвращается ErrAlreadyClosed.
func (r *Repository) Create(ctx context.Context, rec *domain.PartialCommitRecord) error {
	query, args, err := upsertQuery(rec)
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAlreadyClosed
	}
	if err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func upsertQuery(rec *domain.PartialCommitRecord) (string, []interface{}, error) {
	return psqlbuilder.Insert(table).
		Columns(
			"id",
			"idempotency_key",
			"user_id",
			"property_id",
			"account_reference",
			"amount",
			"check_in",
			"check_out",
			"extra_bedding",
			"deep_clean",
			"cause",
			"status",
			"resolved_at",
		).
		Values(
			rec.ID,
			rec.IdempotencyKey,
			rec.UserID,
			rec.PropertyID,
			rec.AccountReference,
			rec.Amount,
			rec.CheckIn,
			rec.CheckOut,
			rec.Addons.ExtraBedding,
			rec.Addons.DeepClean,
			rec.Cause,
			rec.Status,
			rec.ResolvedAt,
		).
		Suffix(`ON CONFLICT (idempotency_key) DO UPDATE SET
			cause = EXCLUDED.cause,
			status = EXCLUDED.status,
			resolved_at = EXCLUDED.resolved_at
		WHERE `+table+`.status = ?
		RETURNING id, created_at`, domain.ReconciliationOpen).
		ToSql()
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.PartialCommitRecord, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan record: %v", ErrScanRow, err)
	}

	return rec, nil
}

// List возвращает записи, новые первыми. status nil означает все статусы.
func (r *Repository) List(ctx context.Context, status *domain.ReconciliationStatus, limit, offset uint64) ([]*domain.PartialCommitRecord, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset)

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.PartialCommitRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan record: %v", ErrScanRow, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// Close переводит открытую запись в refunded или resolved.
// Закрыть можно только открытую запись.
func (r *Repository) Close(ctx context.Context, id string, status domain.ReconciliationStatus, at time.Time) (*domain.PartialCommitRecord, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("resolved_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.ReconciliationOpen}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Отличаем отсутствующую запись от уже закрытой
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyClosed
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	return rec, nil
}

// CloseByKey закрывает открытую запись с данным ключом идемпотентности.
// Возвращает число закрытых записей, 0 если открытой записи нет.
func (r *Repository) CloseByKey(ctx context.Context, idempotencyKey string, status domain.ReconciliationStatus, at time.Time) (int64, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("resolved_at", at).
		Where(squirrel.Eq{"idempotency_key": idempotencyKey, "status": domain.ReconciliationOpen}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CloseByKey - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CloseByKey - execute update: %v", ErrExecQuery, err)
	}

	closed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CloseByKey - rows affected: %v", ErrExecQuery, err)
	}
	return closed, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.PartialCommitRecord, error) {
	var (
		rec        domain.PartialCommitRecord
		resolvedAt sql.NullTime
	)

	err := row.Scan(
		&rec.ID,
		&rec.IdempotencyKey,
		&rec.UserID,
		&rec.PropertyID,
		&rec.AccountReference,
		&rec.Amount,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Addons.ExtraBedding,
		&rec.Addons.DeepClean,
		&rec.Cause,
		&rec.Status,
		&rec.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if resolvedAt.Valid {
		t := resolvedAt.Time
		rec.ResolvedAt = &t
	}
	return &rec, nil
}
