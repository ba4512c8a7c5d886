package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationEngine/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"service_id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"notes",
	"reservation_date",
	"start_time",
	"end_time",
	"status",
	"cancel_token_hash",
	"cancelled_at",
	"cancel_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование; хранится только хэш credential.
// В транзакции из контекста выполняется в ней.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"service_id",
			"customer_name",
			"customer_phone",
			"customer_email",
			"notes",
			"reservation_date",
			"start_time",
			"end_time",
			"status",
			"cancel_token_hash",
		).
		Values(
			res.ServiceID,
			res.CustomerName,
			res.CustomerPhone,
			res.CustomerEmail,
			res.Notes,
			res.Date.Format(domain.DateFormat),
			res.StartTime,
			res.EndTime,
			string(res.Status),
			res.Credential.Column(),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByID", query, args)
}

// GetByTokenHash ищет бронирование по хэшу credential.
// Использованный credential (хэш обнулён) не находится.
func (r *Repository) GetByTokenHash(ctx context.Context, hash string) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"cancel_token_hash": hash}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTokenHash - build select query: %w", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByTokenHash", query, args)
}

// ListByDate возвращает бронирования даты по времени начала.
// Без IncludeInactive только подтверждённые; внутри транзакции строки блокируются FOR UPDATE.
func (r *Repository) ListByDate(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listByDateQuery(filter, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

// LockDate берёт транзакционную advisory-блокировку на дату.
// Сериализует создание бронирований на одну дату, в том числе когда строк за дату ещё нет.
// Блокировка снимается при commit/rollback.
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", DateLockKey(date)); err != nil {
		return fmt.Errorf("%w: LockDate - acquire advisory lock: %w", ErrExecQuery, err)
	}

	return nil
}

// DateLockKey ключ блокировки даты
func DateLockKey(date time.Time) string {
	return table + ":" + date.Format(domain.DateFormat)
}

// CancelByTokenHash условная отмена: только confirmed бронирование с совпадающим хэшем.
// Одним UPDATE выставляет статус, время, причину и обнуляет хэш.
// Если ни одна строка не изменилась, возвращает ErrNotCancellable.
func (r *Repository) CancelByTokenHash(ctx context.Context, hash string, reason *string, cancelledAt time.Time) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := cancelQuery(hash, reason, cancelledAt).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CancelByTokenHash - build update query: %w", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotCancellable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CancelByTokenHash - execute update: %w", ErrExecQuery, err)
	}

	return res, nil
}

func (r *Repository) getOne(ctx context.Context, op, query string, args []interface{}) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
	}

	return res, nil
}

func listByDateQuery(filter domain.ReservationFilter, inTx bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"reservation_date": filter.Date.Format(domain.DateFormat)})

	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"status": string(domain.StatusConfirmed)})
	}

	builder = builder.OrderBy("start_time ASC", "id ASC")

	// Проверка пересечений при создании: строки даты блокируются до конца транзакции
	if inTx && !filter.IncludeInactive {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder
}

func cancelQuery(hash string, reason *string, cancelledAt time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", cancelledAt).
		Set("cancel_reason", reason).
		Set("cancel_token_hash", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"cancel_token_hash": hash}).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		status               string
		tokenHash            sql.NullString
		customerEmail, notes sql.NullString
		cancelReason         sql.NullString
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.ServiceID,
		&res.CustomerName,
		&res.CustomerPhone,
		&customerEmail,
		&notes,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&status,
		&tokenHash,
		&cancelledAt,
		&cancelReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	res.Credential = domain.CredentialFromColumn(nullString(tokenHash))
	res.CustomerEmail = nullString(customerEmail)
	res.Notes = nullString(notes)
	res.CancelReason = nullString(cancelReason)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		res.CancelledAt = &t
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
