package database

import "context"

// Transactor runs fn inside a single database transaction. Repositories pick
// the transaction up from the context, so every read-check-write sequence in
// fn commits or rolls back as one unit.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
