package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/pkg/dbmetrics"
)

type mockTx struct {
	mock.Mock
}

func (m *mockTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (m *mockTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (m *mockTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}
func (m *mockTx) Commit() error   { return m.Called().Error(0) }
func (m *mockTx) Rollback() error { return m.Called().Error(0) }

type mockBeginner struct {
	mock.Mock
}

func (m *mockBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	args := m.Called(opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dbmetrics.TxExecutor), args.Error(1)
}

func TestDoReadCommitted_Commit(t *testing.T) {
	tx := new(mockTx)
	tx.On("Commit").Return(nil).Once()

	db := new(mockBeginner)
	db.On("BeginTx", &sql.TxOptions{Isolation: sql.LevelReadCommitted}).Return(tx, nil).Once()

	mgr := NewTransactionManager(db)

	var sawTx bool
	err := mgr.DoReadCommitted(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Rollback")
}

func TestDo_RollbackOnError(t *testing.T) {
	tx := new(mockTx)
	tx.On("Rollback").Return(nil).Once()

	db := new(mockBeginner)
	db.On("BeginTx", (*sql.TxOptions)(nil)).Return(tx, nil)

	sentinel := errors.New("slot taken")
	err := NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("wrapped: %w", sentinel)
	})

	assert.ErrorIs(t, err, sentinel)
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Commit")
}

func TestDo_RollbackOnPanic(t *testing.T) {
	tx := new(mockTx)
	tx.On("Rollback").Return(nil).Once()

	db := new(mockBeginner)
	db.On("BeginTx", (*sql.TxOptions)(nil)).Return(tx, nil)

	assert.Panics(t, func() {
		_ = NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	tx.AssertExpectations(t)
}

func TestDo_SerializationFailure(t *testing.T) {
	tx := new(mockTx)
	tx.On("Commit").Return(&pq.Error{Code: codeSerializationFailure, Message: "could not serialize access"})
	tx.On("Rollback").Return(nil)

	db := new(mockBeginner)
	db.On("BeginTx", &sql.TxOptions{Isolation: sql.LevelReadCommitted}).Return(tx, nil)

	err := NewTransactionManager(db).DoReadCommitted(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerialization)
}

func TestDo_DriverErrorWrappedInsideFn(t *testing.T) {
	tx := new(mockTx)
	tx.On("Rollback").Return(nil).Once()

	db := new(mockBeginner)
	db.On("BeginTx", &sql.TxOptions{Isolation: sql.LevelReadCommitted}).Return(tx, nil)

	repoErr := errors.New("failed to execute query")
	deadlock := &pq.Error{Code: codeDeadlockDetected, Message: "deadlock detected"}

	err := NewTransactionManager(db).DoReadCommitted(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("%w: LockDate - acquire advisory lock: %w", repoErr, deadlock)
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.ErrorIs(t, err, repoErr)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode(codeDeadlockDetected), pqErr.Code)
	tx.AssertNotCalled(t, "Commit")
}

func TestDo_BeginFailure(t *testing.T) {
	db := new(mockBeginner)
	db.On("BeginTx", &sql.TxOptions{ReadOnly: true}).Return(nil, errors.New("connection refused"))

	err := NewTransactionManager(db).DoReadOnly(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	tx := new(mockTx)
	tx.On("Commit").Return(nil).Once()

	db := new(mockBeginner)
	db.On("BeginTx", (*sql.TxOptions)(nil)).Return(tx, nil).Once()

	mgr := NewTransactionManager(db)
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoReadCommitted(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	db.AssertNumberOfCalls(t, "BeginTx", 1)
}
