// Package postgres implements the repository ports on PostgreSQL using pgx.
package postgres

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
	"inventory/src/infra/db"
)

// New returns the Postgres-backed ports sharing one pool.
func New(pg *db.Postgres, log *slog.Logger) ports.Store {
	return ports.Store{
		Categories: NewCategoryRepository(pg.Pool, log),
		Products:   NewProductRepository(pg.Pool, log),
		Dashboard:  NewDashboardReader(pg.Pool),
		Health:     pg,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// translate maps driver errors onto the domain taxonomy. Context errors become
// ErrCancelled; everything else is wrapped with op.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.NewCancelledError(err)
	default:
		return errors.Wrap(err, op)
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// likePattern turns a search term into an ILIKE substring pattern.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ querier = (*pgxpool.Pool)(nil)
