// Package txn runs a function inside a MongoDB multi-document transaction
// with a bounded optimistic-retry loop.
//
// Every operation that reads then writes related documents (registration,
// message post, reply attach) goes through Run so that retry count and
// backoff are configuration rather than behavior hidden inside the driver.
// Transient commit conflicts are retried up to the bound and surfaced as a
// transient fault once exhausted; business faults returned by the body pass
// through untouched and are never retried.
package txn

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/askbox/internal/app/system/fault"
)

// Default retry bounds used when Options fields are zero.
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 25 * time.Millisecond
)

// ErrConflict marks an optimistic conflict detected by the body itself,
// e.g. a unique-index violation on a sequence number assigned from a
// just-read counter. Bodies wrap it to ask for another attempt; it is
// retried exactly like a server-labeled transient error.
var ErrConflict = errors.New("optimistic conflict")

// Options bounds the retry loop.
type Options struct {
	// MaxAttempts is the total number of times the transaction body is
	// attempted before giving up. Values < 1 mean DefaultMaxAttempts.
	MaxAttempts int
	// Backoff is the pause between attempts. Values <= 0 mean
	// DefaultBackoff.
	Backoff time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Backoff <= 0 {
		o.Backoff = DefaultBackoff
	}
	return o
}

// Run executes body inside a transaction on a session from client.
//
// The context passed to body is a mongo.SessionContext; all reads and
// writes inside body must use it for the transaction to cover them.
//
// On servers without transaction support (standalone mongod, common in
// dev and test) the body runs once without a session. Single-document
// writes stay atomic there; the multi-document guarantees require a
// replica set or mongos.
func Run(ctx context.Context, client *mongo.Client, opts Options, body func(ctx context.Context) error) error {
	opts = opts.withDefaults()

	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return runWithoutSession(ctx, opts, body)
		}
		return fault.Transient("starting store session", err)
	}
	defer sess.EndSession(ctx)

	var last error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sess.StartTransaction(); err != nil {
				return err
			}
			if err := body(sc); err != nil {
				_ = sess.AbortTransaction(sc)
				return err
			}
			return sess.CommitTransaction(sc)
		})
		if err == nil {
			return nil
		}
		if IsNotSupported(err) {
			return runWithoutSession(ctx, opts, body)
		}
		if !IsTransient(err) {
			return err
		}
		last = err
		if attempt < opts.MaxAttempts {
			if err := pause(ctx, opts.Backoff); err != nil {
				return err
			}
		}
	}
	return fault.Transient("transaction retries exhausted", last)
}

// runWithoutSession is the standalone-server fallback. The bounded retry
// loop still applies so bodies that detect their own conflicts (ErrConflict)
// get the same retry semantics they would under a real transaction.
func runWithoutSession(ctx context.Context, opts Options, body func(ctx context.Context) error) error {
	var last error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		err := body(ctx)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		last = err
		if attempt < opts.MaxAttempts {
			if err := pause(ctx, opts.Backoff); err != nil {
				return err
			}
		}
	}
	return fault.Transient("transaction retries exhausted", last)
}

func pause(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return fault.Transient("transaction canceled", ctx.Err())
	}
}

// IsTransient reports whether err is a conflict worth another attempt:
// either the server labeled it TransientTransactionError (write conflict
// on the read set) or UnknownTransactionCommitResult, or the body flagged
// it with ErrConflict.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConflict) {
		return true
	}
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel("TransientTransactionError") ||
			se.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions at all (standalone mongod, old server).
// Callers fall back to running the body without a session.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation (transactions need a replica set),
		// 51 sessions unsupported, 263 operation not allowed in txn.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set"):
		return true
	case strings.Contains(msg, "session") && strings.Contains(msg, "not supported"):
		return true
	case strings.Contains(msg, "transaction") && strings.Contains(msg, "session"):
		return true
	case strings.Contains(msg, "illegal operation"):
		return true
	}
	return false
}
