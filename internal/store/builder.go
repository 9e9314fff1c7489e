package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter selects rows whose column equals the given value. Multiple filters
// are combined with AND.
type Filter struct {
	Column string
	Value  any
}

// Assignment binds a value to a column on insert or update.
type Assignment struct {
	Column string
	Value  any
}

// SelectOptions tune a read. The zero value selects everything in storage
// order.
type SelectOptions struct {
	OrderBy    string
	Descending bool
	Limit      int
}

// Column and table identifiers are developer-controlled constants; only the
// values travel as bound parameters. The builders below are pure so the
// parameter-indexing rules can be tested without a database.

// BuildInsert renders a single-row INSERT with positional placeholders.
func BuildInsert(table string, assigns []Assignment) (string, []any) {
	columns := make([]string, 0, len(assigns))
	params := make([]string, 0, len(assigns))
	args := make([]any, 0, len(assigns))
	for i, a := range assigns {
		columns = append(columns, a.Column)
		params = append(params, "$"+strconv.Itoa(i+1))
		args = append(args, a.Value)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(params, ", "),
	)
	return query, args
}

// BuildSelect renders SELECT * with an optional AND-joined WHERE clause,
// ordering and limit. No filters selects all rows.
func BuildSelect(table string, filters []Filter, opts SelectOptions) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(table)

	args := appendWhere(&sb, filters, 1)

	if opts.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(opts.OrderBy)
		if opts.Descending {
			sb.WriteString(" DESC")
		}
	}
	if opts.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(opts.Limit))
	}
	return sb.String(), args
}

// BuildUpdate renders an UPDATE whose filter parameters are bound first and
// whose assignments continue the same counter, so the two never collide.
func BuildUpdate(table string, filters []Filter, assigns []Assignment) (string, []any) {
	args := make([]any, 0, len(filters)+len(assigns))
	next := 1

	where := make([]string, 0, len(filters))
	for _, f := range filters {
		where = append(where, f.Column+" = $"+strconv.Itoa(next))
		args = append(args, f.Value)
		next++
	}

	set := make([]string, 0, len(assigns))
	for _, a := range assigns {
		set = append(set, a.Column+" = $"+strconv.Itoa(next))
		args = append(args, a.Value)
		next++
	}

	query := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(set, ", "))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query, args
}

// BuildDelete renders a parameterized DELETE by filter.
func BuildDelete(table string, filters []Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(table)
	args := appendWhere(&sb, filters, 1)
	return sb.String(), args
}

// BuildTrim renders a DELETE keeping only the newest $1 rows by primary key.
// Oldest rows go first, matching the retention contract.
func BuildTrim(table, idColumn string) string {
	return fmt.Sprintf(
		"DELETE FROM %s WHERE %s NOT IN (SELECT %s FROM %s ORDER BY %s DESC LIMIT $1)",
		table, idColumn, idColumn, table, idColumn,
	)
}

func appendWhere(sb *strings.Builder, filters []Filter, start int) []any {
	if len(filters) == 0 {
		return nil
	}
	args := make([]any, 0, len(filters))
	clauses := make([]string, 0, len(filters))
	for i, f := range filters {
		clauses = append(clauses, f.Column+" = $"+strconv.Itoa(start+i))
		args = append(args, f.Value)
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(clauses, " AND "))
	return args
}
