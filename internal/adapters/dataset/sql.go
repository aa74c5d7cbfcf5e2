package dataset

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

func (l *Loader) readSQLite(ctx context.Context, path string) (rowSet, error) {
	if err := validTable(l.table); err != nil {
		return rowSet{}, err
	}
	// sql.Open would silently create a missing database file.
	if _, err := os.Stat(path); err != nil {
		return rowSet{}, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return rowSet{}, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+l.table+`"`)
	if err != nil {
		return rowSet{}, err
	}
	defer func() { _ = rows.Close() }()

	header, err := rows.Columns()
	if err != nil {
		return rowSet{}, err
	}
	out := rowSet{header: header}
	vals := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return rowSet{}, err
		}
		out.records = append(out.records, cells(vals))
	}
	return out, rows.Err()
}

func (l *Loader) readPostgres(ctx context.Context, dsn string) (rowSet, error) {
	if err := validTable(l.table); err != nil {
		return rowSet{}, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return rowSet{}, err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return rowSet{}, err
	}

	rows, err := pool.Query(ctx, "SELECT * FROM "+pgx.Identifier{l.table}.Sanitize())
	if err != nil {
		return rowSet{}, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := rowSet{header: make([]string, len(fields))}
	for i, f := range fields {
		out.header[i] = f.Name
	}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return rowSet{}, err
		}
		out.records = append(out.records, cells(vals))
	}
	return out, rows.Err()
}

func cells(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = cell(v)
	}
	return out
}

// cell renders a driver value as the text a CSV file would hold.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02")
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case []string:
		return formatTags(boardgame.TagSet(x))
	case []any:
		tags := make(boardgame.TagSet, len(x))
		for i, e := range x {
			tags[i] = cell(e)
		}
		return formatTags(tags)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return ""
		}
		return cell(dv)
	default:
		return fmt.Sprint(x)
	}
}

// WriteSQLite creates (or replaces) table in the SQLite file at path and
// fills it with games.
func WriteSQLite(ctx context.Context, path, table string, games []boardgame.Game) error {
	if err := validTable(table); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	cols := Columns()
	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = c + " TEXT"
		marks[i] = "?"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []string{
		`DROP TABLE IF EXISTS "` + table + `"`,
		`CREATE TABLE "` + table + `" (` + strings.Join(defs, ", ") + `)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO "`+table+`" (`+strings.Join(cols, ", ")+`) VALUES (`+strings.Join(marks, ", ")+`)`)
	if err != nil {
		return err
	}
	defer func() { _ = ins.Close() }()

	for _, g := range games {
		rec := gameRecord(g)
		args := make([]any, len(rec))
		for i, v := range rec {
			args[i] = v
		}
		if _, err := ins.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
