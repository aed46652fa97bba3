package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver минимальный драйвер: commit падает с commitErr первые failCommits раз
type fakeDriver struct {
	mu          sync.Mutex
	failCommits int
	commitErr   error
	commits     int
	rollbacks   int
}

func (d *fakeDriver) Open(string) (driver.Conn, error) { return &fakeConn{d: d}, nil }

type fakeConnector struct{ d *fakeDriver }

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) { return &fakeConn{d: c.d}, nil }
func (c fakeConnector) Driver() driver.Driver                        { return c.d }

type fakeConn struct{ d *fakeDriver }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (c *fakeConn) Close() error                        { return nil }
func (c *fakeConn) Begin() (driver.Tx, error)           { return &fakeTx{d: c.d}, nil }

// BeginTx нужен, чтобы database/sql принял уровень изоляции SERIALIZABLE
func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return &fakeTx{d: c.d}, nil
}

type fakeTx struct{ d *fakeDriver }

func (tx *fakeTx) Commit() error {
	tx.d.mu.Lock()
	defer tx.d.mu.Unlock()
	tx.d.commits++
	if tx.d.failCommits > 0 {
		tx.d.failCommits--
		return tx.d.commitErr
	}
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.d.mu.Lock()
	defer tx.d.mu.Unlock()
	tx.d.rollbacks++
	return nil
}

func newTestManager(drv *fakeDriver) (*TransactionManager, *sql.DB) {
	db := sql.OpenDB(fakeConnector{d: drv})
	return NewTransactionManager(db), db
}

func TestDoSerializable_RetriesSerializationFailureAtCommit(t *testing.T) {
	drv := &fakeDriver{failCommits: 2, commitErr: &pq.Error{Code: "40001"}}
	m, db := newTestManager(drv)
	defer db.Close()

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, drv.commits)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	drv := &fakeDriver{failCommits: maxRetries, commitErr: &pq.Error{Code: "40001"}}
	m, db := newTestManager(drv)
	defer db.Close()

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxRetries, calls)
}

func TestDoSerializable_NonSerializationCommitErrorNotRetried(t *testing.T) {
	drv := &fakeDriver{failCommits: 1, commitErr: errors.New("connection reset")}
	m, db := newTestManager(drv)
	defer db.Close()

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_RetriesSerializationFailureFromFn(t *testing.T) {
	drv := &fakeDriver{}
	m, db := newTestManager(drv)
	defer db.Close()

	// Ошибка в том виде, в котором её возвращает репозиторий:
	// сентинел плюс причина, сохраненная через %w
	sentinel := errors.New("repository: failed to execute query")
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("%w: FindOverlapping - execute query: %w", sentinel, &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, drv.rollbacks)
}

func TestDoSerializable_FnErrorWithoutCauseNotRetried(t *testing.T) {
	drv := &fakeDriver{}
	m, db := newTestManager(drv)
	defer db.Close()

	wantErr := errors.New("slot conflict")
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, drv.rollbacks)
}
