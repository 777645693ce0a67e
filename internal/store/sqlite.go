package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

var columns = map[Table][]string{
	Projects:         {"id", "name", "created_at"},
	Pages:            {"id", "name", "project_id", "created_at"},
	Elements:         {"id", "name", "page_id", "selector_type", "selector_value", "action_type", "action_value", "created_at"},
	Features:         {"id", "name", "parent_feature_id", "created_at"},
	Scenarios:        {"id", "name", "feature_id", "created_at"},
	ScenarioElements: {"id", "scenario_id", "element_name", "action_type", "action_value", "created_at"},
}

// SQLite implements Backend on a database opened with db.Open.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Select(ctx context.Context, table Table, q Query) ([]Row, error) {
	cols, err := tableColumns(table)
	if err != nil {
		return nil, err
	}

	var where []string
	var args []any
	for _, col := range sortedKeys(q.Where) {
		if err := checkColumn(table, col); err != nil {
			return nil, err
		}
		v := sqlValue(q.Where[col])
		if v == nil {
			where = append(where, col+" IS NULL")
			continue
		}
		where = append(where, col+" = ?")
		args = append(args, v)
	}
	if q.IDPrefix != "" {
		where = append(where, `id LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(q.IDPrefix)+"%")
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if vals[i].Valid {
				row[col] = vals[i].String
			} else {
				row[col] = nil
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}
	return out, nil
}

// Insert writes all rows in one transaction, in order, so a row may
// reference one inserted earlier in the same batch.
func (s *SQLite) Insert(ctx context.Context, table Table, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := tableColumns(table); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert into %s: %w", table, err)
	}
	for _, row := range rows {
		keys := sortedKeys(row)
		args := make([]any, len(keys))
		for i, col := range keys {
			if err := checkColumn(table, col); err != nil {
				tx.Rollback()
				return err
			}
			args[i] = sqlValue(row[col])
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(keys, ", "), placeholders)
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert into %s: %w", table, err)
	}
	return nil
}

func (s *SQLite) Update(ctx context.Context, table Table, id string, fields Row) error {
	if len(fields) == 0 {
		return nil
	}
	if _, err := tableColumns(table); err != nil {
		return err
	}

	keys := sortedKeys(fields)
	set := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, col := range keys {
		if col == "id" {
			return fmt.Errorf("updating %s: id is immutable", table)
		}
		if err := checkColumn(table, col); err != nil {
			return err
		}
		set[i] = col + " = ?"
		args = append(args, sqlValue(fields[col]))
	}
	args = append(args, id)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(set, ", "))
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", table, id, err)
	}
	return checkAffected(res, table, id)
}

func (s *SQLite) Delete(ctx context.Context, table Table, id string) error {
	if _, err := tableColumns(table); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", table, id, err)
	}
	return checkAffected(res, table, id)
}

func checkAffected(res sql.Result, table Table, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func tableColumns(table Table) ([]string, error) {
	cols, ok := columns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return cols, nil
}

func checkColumn(table Table, col string) error {
	for _, c := range columns[table] {
		if c == col {
			return nil
		}
	}
	return fmt.Errorf("unknown column %q in %s", col, table)
}

// sqlValue unwraps *string so a nil pointer becomes SQL NULL.
func sqlValue(v any) any {
	if p, ok := v.(*string); ok {
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
