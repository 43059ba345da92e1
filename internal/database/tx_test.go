package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// txRecorder counts transaction outcomes observed by the stub driver.
type txRecorder struct {
	commits     int
	rollbacks   int
	rollbackErr error
}

type stubConnector struct{ rec *txRecorder }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) {
	return stubConn{rec: c.rec}, nil
}
func (c stubConnector) Driver() driver.Driver { return stubDriver{rec: c.rec} }

type stubDriver struct{ rec *txRecorder }

func (d stubDriver) Open(string) (driver.Conn, error) { return stubConn{rec: d.rec}, nil }

type stubConn struct{ rec *txRecorder }

func (c stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c stubConn) Close() error                        { return nil }
func (c stubConn) Begin() (driver.Tx, error)           { return stubTx{rec: c.rec}, nil }

type stubTx struct{ rec *txRecorder }

func (t stubTx) Commit() error { t.rec.commits++; return nil }
func (t stubTx) Rollback() error {
	t.rec.rollbacks++
	return t.rec.rollbackErr
}

func recordedDB(rec *txRecorder) *sql.DB { return sql.OpenDB(stubConnector{rec: rec}) }

func TestWithTx_CommitsOnNil(t *testing.T) {
	rec := &txRecorder{}
	db := recordedDB(rec)
	defer db.Close()

	require.NoError(t, WithTx(context.Background(), db, func(*sql.Tx) error { return nil }))

	assert.Equal(t, 1, rec.commits)
	assert.Equal(t, 0, rec.rollbacks)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	rec := &txRecorder{}
	db := recordedDB(rec)
	defer db.Close()

	cause := errors.New("constraint violated")
	err := WithTx(context.Background(), db, func(*sql.Tx) error { return cause })

	assert.Same(t, cause, err, "the callback's error must come back unwrapped")
	assert.Equal(t, 0, rec.commits)
	assert.Equal(t, 1, rec.rollbacks)
}

func TestWithTx_RollbackFailureDoesNotMaskError(t *testing.T) {
	rec := &txRecorder{rollbackErr: errors.New("connection gone")}
	db := recordedDB(rec)
	defer db.Close()

	cause := errors.New("constraint violated")
	err := WithTx(context.Background(), db, func(*sql.Tx) error { return cause })

	assert.Same(t, cause, err, "a failed rollback is logged, never returned")
	assert.Equal(t, 1, rec.rollbacks)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	rec := &txRecorder{}
	db := recordedDB(rec)
	defer db.Close()

	require.Panics(t, func() {
		_ = WithTx(context.Background(), db, func(*sql.Tx) error { panic("boom") })
	})

	assert.Equal(t, 0, rec.commits)
	assert.Equal(t, 1, rec.rollbacks)
}
