package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
)

// TxMiddleware runs the handler inside a database transaction.
// The response is buffered so that it is only sent after the outcome is known:
// statuses below 400 commit, anything else rolls back.
// Callbacks registered with OnCommit and OnRollback run once the outcome is known.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				writeInternalError(w)
				return
			}

			callbacks := &txCallbacks{}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					callbacks.run(callbacks.onRollback)
					panic(rec)
				}
			}()

			ctx := setTxToContext(r.Context(), tx)
			ctx = context.WithValue(ctx, txCallbacksKey{}, callbacks)

			buf := newBufferedWriter()
			next.ServeHTTP(buf, r.WithContext(ctx))

			if buf.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				callbacks.run(callbacks.onRollback)
				buf.flush(w)
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				callbacks.run(callbacks.onRollback)
				writeInternalError(w)
				return
			}
			buf.flush(w)
			callbacks.run(callbacks.onCommit)
		})
	}
}

// bufferedWriter holds a response until the transaction outcome is known.
type bufferedWriter struct {
	header     http.Header
	body       bytes.Buffer
	statusCode int
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: http.Header{}, statusCode: http.StatusOK}
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *bufferedWriter) WriteHeader(code int) { b.statusCode = code }

func (b *bufferedWriter) flush(w http.ResponseWriter) {
	for k, v := range b.header {
		w.Header()[k] = v
	}
	w.WriteHeader(b.statusCode)
	w.Write(b.body.Bytes())
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"status":false,"message":"Internal Server Error"}` + "\n"))
}

type txCallbacksKey struct{}

// txCallbacks collects work that depends on the transaction outcome.
type txCallbacks struct {
	onCommit   []func()
	onRollback []func()
}

func (c *txCallbacks) run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// OnCommit runs fn after the request transaction commits.
// Outside TxMiddleware there is nothing to wait for and fn runs immediately.
func OnCommit(ctx context.Context, fn func()) {
	if c, ok := ctx.Value(txCallbacksKey{}).(*txCallbacks); ok {
		c.onCommit = append(c.onCommit, fn)
		return
	}
	fn()
}

// OnRollback runs fn if the request transaction is rolled back or fails to commit.
// Outside TxMiddleware fn is dropped.
func OnRollback(ctx context.Context, fn func()) {
	if c, ok := ctx.Value(txCallbacksKey{}).(*txCallbacks); ok {
		c.onRollback = append(c.onRollback, fn)
	}
}

// TxCallbacks exposes OnCommit and OnRollback for injection into services.
type TxCallbacks struct{}

func (TxCallbacks) OnCommit(ctx context.Context, fn func()) { OnCommit(ctx, fn) }

func (TxCallbacks) OnRollback(ctx context.Context, fn func()) { OnRollback(ctx, fn) }

type txKey struct{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}
