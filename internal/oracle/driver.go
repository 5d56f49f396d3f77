package oracle

import (
	"context"
	"database/sql/driver"
)

// Driver wraps an Oracle driver and rewrites every outgoing statement for
// 11g compatibility. Register it in place of the underlying driver:
//
//	sql.Register("oracle11g", oracle.NewDriver(&go_ora.OracleDriver{}))
//
// Only statement text is touched; bind parameters pass through unmodified,
// so placeholder count and order always match the rewritten statement.
type Driver struct {
	inner driver.Driver
}

// NewDriver wraps the given driver with 11g statement rewriting.
func NewDriver(inner driver.Driver) *Driver {
	return &Driver{inner: inner}
}

// Open opens a connection and wraps it with statement rewriting.
func (d *Driver) Open(name string) (driver.Conn, error) {
	c, err := d.inner.Open(name)
	if err != nil {
		return nil, err
	}
	return &conn{inner: c}, nil
}

// conn intercepts every path a statement can take to the wire: Prepare,
// PrepareContext, ExecContext and QueryContext. database/sql falls back to
// Prepare when the context variants are not implemented, so all four rewrite.
type conn struct {
	inner driver.Conn
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return c.inner.Prepare(RewriteFetchFirst(query))
}

func (c *conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	query = RewriteFetchFirst(query)
	if pc, ok := c.inner.(driver.ConnPrepareContext); ok {
		return pc.PrepareContext(ctx, query)
	}
	return c.inner.Prepare(query)
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	ec, ok := c.inner.(driver.ExecerContext)
	if !ok {
		// Let database/sql fall back to PrepareContext.
		return nil, driver.ErrSkip
	}
	return ec.ExecContext(ctx, RewriteFetchFirst(query), args)
}

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	qc, ok := c.inner.(driver.QueryerContext)
	if !ok {
		return nil, driver.ErrSkip
	}
	return qc.QueryContext(ctx, RewriteFetchFirst(query), args)
}

func (c *conn) Begin() (driver.Tx, error) {
	return c.inner.Begin() //nolint:staticcheck // driver.Conn still requires it
}

func (c *conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if bt, ok := c.inner.(driver.ConnBeginTx); ok {
		return bt.BeginTx(ctx, opts)
	}
	return c.inner.Begin() //nolint:staticcheck
}

func (c *conn) Close() error {
	return c.inner.Close()
}

func (c *conn) Ping(ctx context.Context) error {
	if p, ok := c.inner.(driver.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (c *conn) ResetSession(ctx context.Context) error {
	if sr, ok := c.inner.(driver.SessionResetter); ok {
		return sr.ResetSession(ctx)
	}
	return nil
}

func (c *conn) IsValid() bool {
	if v, ok := c.inner.(driver.Validator); ok {
		return v.IsValid()
	}
	return true
}

// CheckNamedValue delegates bind-type checks to the underlying driver so
// Oracle-specific value conversions keep working through the wrapper.
func (c *conn) CheckNamedValue(nv *driver.NamedValue) error {
	if nvc, ok := c.inner.(driver.NamedValueChecker); ok {
		return nvc.CheckNamedValue(nv)
	}
	return driver.ErrSkip
}
