package database

import (
	"context"
	"database/sql/driver"
	"math/rand"
	"strings"
	"time"
)

const (
	retryBaseDelay = 50 * time.Millisecond
	retryMaxDelay  = 2 * time.Second
)

// retryConnector hands out connections that retry statements failing with
// SQLITE_BUSY or SQLITE_LOCKED. busy_timeout covers most contention; this
// covers what's left, e.g. a lock upgrade inside a deferred transaction.
type retryConnector struct {
	driver.Connector
	maxRetries int
}

func newRetryConnector(connector driver.Connector, maxRetries int) *retryConnector {
	return &retryConnector{Connector: connector, maxRetries: maxRetries}
}

func (rc *retryConnector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := rc.Connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return &retryConn{conn: conn, maxRetries: rc.maxRetries}, nil
}

func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{"database is locked", "database table is locked", "SQLITE_BUSY", "SQLITE_LOCKED", "(5)", "(6)"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// retryDelay doubles per attempt, adds up to 25% jitter and is capped.
func retryDelay(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<attempt)
	delay += time.Duration(rand.Int63n(int64(delay/4) + 1))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}

func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !isBusyError(err) || attempt >= maxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay(attempt)):
		}
	}
}

// retry runs fn until it succeeds or gives up, returning its last value.
func retry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var out T
	err := retryWithBackoff(ctx, maxRetries, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

type retryConn struct {
	conn       driver.Conn
	maxRetries int
}

func (c *retryConn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

func (c *retryConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	var stmt driver.Stmt
	var err error
	if p, ok := c.conn.(driver.ConnPrepareContext); ok {
		stmt, err = p.PrepareContext(ctx, query)
	} else {
		stmt, err = c.conn.Prepare(query)
	}
	if err != nil {
		return nil, err
	}
	return &retryStmt{stmt: stmt, maxRetries: c.maxRetries}, nil
}

func (c *retryConn) Close() error {
	return c.conn.Close()
}

func (c *retryConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *retryConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return retry(ctx, c.maxRetries, func() (driver.Tx, error) {
		if b, ok := c.conn.(driver.ConnBeginTx); ok {
			return b.BeginTx(ctx, opts)
		}
		return c.conn.Begin() //nolint:staticcheck // fallback for drivers without BeginTx
	})
}

func (c *retryConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	execer, ok := c.conn.(driver.ExecerContext)
	if !ok {
		return nil, driver.ErrSkip
	}
	return retry(ctx, c.maxRetries, func() (driver.Result, error) {
		return execer.ExecContext(ctx, query, args)
	})
}

func (c *retryConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	queryer, ok := c.conn.(driver.QueryerContext)
	if !ok {
		return nil, driver.ErrSkip
	}
	return retry(ctx, c.maxRetries, func() (driver.Rows, error) {
		return queryer.QueryContext(ctx, query, args)
	})
}

func (c *retryConn) Ping(ctx context.Context) error {
	if pinger, ok := c.conn.(driver.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

func (c *retryConn) ResetSession(ctx context.Context) error {
	if resetter, ok := c.conn.(driver.SessionResetter); ok {
		return resetter.ResetSession(ctx)
	}
	return nil
}

func (c *retryConn) IsValid() bool {
	if validator, ok := c.conn.(driver.Validator); ok {
		return validator.IsValid()
	}
	return true
}

type retryStmt struct {
	stmt       driver.Stmt
	maxRetries int
}

func (s *retryStmt) Close() error {
	return s.stmt.Close()
}

func (s *retryStmt) NumInput() int {
	return s.stmt.NumInput()
}

func (s *retryStmt) Exec(args []driver.Value) (driver.Result, error) {
	return retry(context.Background(), s.maxRetries, func() (driver.Result, error) {
		return s.stmt.Exec(args) //nolint:staticcheck // required by driver.Stmt
	})
}

func (s *retryStmt) Query(args []driver.Value) (driver.Rows, error) {
	return retry(context.Background(), s.maxRetries, func() (driver.Rows, error) {
		return s.stmt.Query(args) //nolint:staticcheck // required by driver.Stmt
	})
}

func (s *retryStmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	execer, ok := s.stmt.(driver.StmtExecContext)
	if !ok {
		return s.Exec(namedToValues(args))
	}
	return retry(ctx, s.maxRetries, func() (driver.Result, error) {
		return execer.ExecContext(ctx, args)
	})
}

func (s *retryStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	queryer, ok := s.stmt.(driver.StmtQueryContext)
	if !ok {
		return s.Query(namedToValues(args))
	}
	return retry(ctx, s.maxRetries, func() (driver.Rows, error) {
		return queryer.QueryContext(ctx, args)
	})
}

func namedToValues(args []driver.NamedValue) []driver.Value {
	values := make([]driver.Value, len(args))
	for i, arg := range args {
		values[i] = arg.Value
	}
	return values
}
