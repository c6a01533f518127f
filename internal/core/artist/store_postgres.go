// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/artists/internal/platform/database/schema"
	"github.com/taibuivan/artists/internal/platform/dberr"
	"github.com/taibuivan/artists/pkg/uuid"
)

// Querier is the part of a pgx pool the repository needs. *pgxpool.Pool
// satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// PostgresRepository talks straight to the hosted PostgreSQL database.
type PostgresRepository struct {
	db    Querier
	clock func() time.Time
}

// NewPostgresRepository wraps a pool. A nil clock means [time.Now].
func NewPostgresRepository(db Querier, clock func() time.Time) *PostgresRepository {
	if clock == nil {
		clock = time.Now
	}
	return &PostgresRepository{db: db, clock: clock}
}

// selectColumns is the projection every read uses, in [scanArtist] order.
var selectColumns = strings.Join(schema.Artists.Columns(), ", ")

func (repository *PostgresRepository) ListArtists(context context.Context) ([]*Artist, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		selectColumns, schema.Artists.Table, schema.Artists.CreatedAt,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_artists")
	}
	return collectArtists(rows, "list_artists")
}

func (repository *PostgresRepository) GetArtist(context context.Context, id string) (*Artist, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.Artists.Table, schema.Artists.ID,
	)

	a, err := scanArtist(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateArtist(context context.Context, input Input) (*Artist, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING %s
	`,
		schema.Artists.Table, selectColumns, selectColumns,
	)

	record := input.NewArtist(uuid.New(), stamp(repository.clock()))
	a, err := scanArtist(repository.db.QueryRow(context, query,
		record.ID, record.Nickname, record.Type, record.Instagram, record.Telegram,
		record.Email, record.Phone, record.CreatedAt,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "create_artist")
	}
	return a, nil
}

// UpdateArtist sets only the columns present in the patch. updated_at is
// forced strictly past its previous value even if the clock stalls.
func (repository *PostgresRepository) UpdateArtist(context context.Context, id string, patch Patch) (*Artist, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	args := []any{id, stamp(repository.clock())}
	assignments := []string{
		fmt.Sprintf("%[1]s = GREATEST($2, %[1]s + interval '1 microsecond')", schema.Artists.UpdatedAt),
	}

	changes := patch.Changes()
	for _, column := range []string{FieldNickname, FieldType, FieldInstagram, FieldTelegram, FieldEmail, FieldPhone} {
		value, present := changes[column]
		if !present {
			continue
		}
		args = append(args, value)
		assignments = append(assignments, column+" = $"+strconv.Itoa(len(args)))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.Artists.Table, strings.Join(assignments, ", "), schema.Artists.ID, selectColumns,
	)

	a, err := scanArtist(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_artist")
	}
	return a, nil
}

func (repository *PostgresRepository) DeleteArtist(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Artists.Table, schema.Artists.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_artist")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SearchArtists(context context.Context, search string) ([]*Artist, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s ILIKE $1 OR %s ILIKE $1 OR %s ILIKE $1
		ORDER BY %s DESC
	`,
		selectColumns, schema.Artists.Table,
		schema.Artists.Nickname, schema.Artists.Type, schema.Artists.Email,
		schema.Artists.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, "%"+EscapeLike(search)+"%")
	if err != nil {
		return nil, dberr.Wrap(err, "search_artists")
	}
	return collectArtists(rows, "search_artists")
}

// Ping verifies the pool can reach the database.
func (repository *PostgresRepository) Ping(context context.Context) error {
	return dberr.Wrap(repository.db.Ping(context), "ping")
}

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanArtist(row pgx.Row) (*Artist, error) {
	a := &Artist{}
	err := row.Scan(&a.ID, &a.Nickname, &a.Type, &a.Instagram, &a.Telegram, &a.Email, &a.Phone, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func collectArtists(rows pgx.Rows, action string) ([]*Artist, error) {
	defer rows.Close()

	artists := make([]*Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		artists = append(artists, a)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return artists, nil
}
