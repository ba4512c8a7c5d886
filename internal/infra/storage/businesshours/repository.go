package businesshours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationEngine/pkg/psqlbuilder"
)

const table = "business_hours"

var columns = []string{
	"id",
	"year",
	"month",
	"week_of_month",
	"day_of_week",
	"is_closed",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий часов работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetExact ищет запись по точному ключу (год, месяц, неделя месяца, день недели)
func (r *Repository) GetExact(ctx context.Context, year, month, weekOfMonth int, dayOfWeek domain.Weekday) (*domain.BusinessHourRecord, error) {
	query, args, err := exactQuery(year, month, weekOfMonth, dayOfWeek).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExact - build select query: %w", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetExact", query, args)
}

// GetFallback ищет запись того же дня недели в месяце с наименьшим номером недели
func (r *Repository) GetFallback(ctx context.Context, year, month int, dayOfWeek domain.Weekday) (*domain.BusinessHourRecord, error) {
	query, args, err := fallbackQuery(year, month, dayOfWeek).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFallback - build select query: %w", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetFallback", query, args)
}

// ExistsForMonth проверяет, заполнен ли месяц
func (r *Repository) ExistsForMonth(ctx context.Context, year, month int) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := existsQuery(year, month).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForMonth - build query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForMonth - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// SeedMonth вставляет записи пачкой; уже существующие ключи пропускаются.
// Возвращает количество вставленных строк.
func (r *Repository) SeedMonth(ctx context.Context, records []*domain.BusinessHourRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := seedQuery(records).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SeedMonth - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SeedMonth - execute insert: %w", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SeedMonth - get rows affected: %w", ErrExecQuery, err)
	}

	return inserted, nil
}

// Upsert создает или обновляет запись по ключу
func (r *Repository) Upsert(ctx context.Context, record *domain.BusinessHourRecord) (*domain.BusinessHourRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery(record).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&record.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}

// ListForMonth возвращает все записи месяца, упорядоченные по неделе и дню
func (r *Repository) ListForMonth(ctx context.Context, year, month int) ([]*domain.BusinessHourRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"year": year}).
		Where(squirrel.Eq{"month": month}).
		OrderBy("week_of_month ASC", "day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForMonth - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForMonth - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.BusinessHourRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForMonth - scan row: %w", ErrScanRow, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForMonth - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}

func (r *Repository) getOne(ctx context.Context, op, query string, args []interface{}) (*domain.BusinessHourRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	record, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan record: %w", ErrScanRow, op, err)
	}

	return record, nil
}

func exactQuery(year, month, weekOfMonth int, dayOfWeek domain.Weekday) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"year": year}).
		Where(squirrel.Eq{"month": month}).
		Where(squirrel.Eq{"week_of_month": weekOfMonth}).
		Where(squirrel.Eq{"day_of_week": int(dayOfWeek)})
}

// fallbackQuery тай-брейк: побеждает наименьший номер недели
func fallbackQuery(year, month int, dayOfWeek domain.Weekday) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"year": year}).
		Where(squirrel.Eq{"month": month}).
		Where(squirrel.Eq{"day_of_week": int(dayOfWeek)}).
		OrderBy("week_of_month ASC").
		Limit(1)
}

func existsQuery(year, month int) squirrel.SelectBuilder {
	return psqlbuilder.Select().
		Column(squirrel.Expr("EXISTS(SELECT 1 FROM "+table+" WHERE year = ? AND month = ?)", year, month))
}

func seedQuery(records []*domain.BusinessHourRecord) squirrel.InsertBuilder {
	builder := psqlbuilder.Insert(table).
		Columns("year", "month", "week_of_month", "day_of_week", "is_closed", "open_time", "close_time")

	for _, rec := range records {
		builder = builder.Values(rec.Year, rec.Month, rec.WeekOfMonth, int(rec.DayOfWeek), rec.IsClosed, rec.OpenTime, rec.CloseTime)
	}

	return builder.Suffix("ON CONFLICT (year, month, week_of_month, day_of_week) DO NOTHING")
}

func upsertQuery(record *domain.BusinessHourRecord) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns("year", "month", "week_of_month", "day_of_week", "is_closed", "open_time", "close_time").
		Values(record.Year, record.Month, record.WeekOfMonth, int(record.DayOfWeek), record.IsClosed, record.OpenTime, record.CloseTime).
		Suffix(`ON CONFLICT (year, month, week_of_month, day_of_week) DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*domain.BusinessHourRecord, error) {
	var (
		record               domain.BusinessHourRecord
		dayOfWeek            int
		openTime, closeTime  sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.Year,
		&record.Month,
		&record.WeekOfMonth,
		&dayOfWeek,
		&record.IsClosed,
		&openTime,
		&closeTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.DayOfWeek = domain.Weekday(dayOfWeek)
	if openTime.Valid {
		record.OpenTime = &openTime.String
	}
	if closeTime.Valid {
		record.CloseTime = &closeTime.String
	}
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}
