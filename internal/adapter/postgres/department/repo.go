// Package department implements the department store using PostgreSQL.
// Uniqueness of name and code is enforced case-insensitively by indexes
// created in the embedded migrations.
package department

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/coursereview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

const table = "departments"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type row struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
}

// Repo provides department persistence backed by PostgreSQL.
type Repo struct {
	q     postgres.Querier
	newID func() uuid.UUID
}

// New creates a new department repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q, newID: uuid.New}
}

// List returns all departments ordered by creation time.
// Returns an empty slice (not nil) when the table is empty.
func (r *Repo) List(ctx context.Context) ([]domain.Department, error) {
	query, args, err := builder.
		Select("id", "name", "code", "created_at").
		From(table).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, table, "list")
	}

	depts := make([]domain.Department, len(rows))
	for i, rw := range rows {
		depts[i] = toDomain(rw)
	}
	return depts, nil
}

// Insert stores a single department and returns it with its generated ID.
// Returns domain.ErrAlreadyExists if the name or code is already taken.
func (r *Repo) Insert(ctx context.Context, d domain.Department) (domain.Department, error) {
	id := r.newID()

	query, args, err := builder.
		Insert(table).
		Columns("id", "name", "code").
		Values(id, d.Name, d.Code).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return domain.Department{}, fmt.Errorf("build insert query: %w", err)
	}

	var createdAt time.Time
	if err := r.q.QueryRow(ctx, query, args...).Scan(&createdAt); err != nil {
		return domain.Department{}, postgres.MapError(err, "department", fmt.Sprintf("%q", d.Code))
	}

	return toDomain(row{ID: id, Name: d.Name, Code: d.Code, CreatedAt: createdAt}), nil
}

func toDomain(r row) domain.Department {
	return domain.Department{
		ID:        r.ID.String(),
		Name:      r.Name,
		Code:      r.Code,
		CreatedAt: r.CreatedAt,
	}
}
