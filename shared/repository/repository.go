package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/shared/constant"
	"roomslot/shared/dto"
	"roomslot/shared/logger"

	"github.com/jmoiron/sqlx"
)

const lockForUpdate = "FOR UPDATE"

var errRequiredFilter = errors.New("required filter")

// column is one selected field. Joined fields carry the table they come from and,
// when the struct tag renames them, the alias they are scanned into.
type column struct {
	name  string
	table string
	alias string
}

// key is the name the column is scanned into.
func (c column) key() string {
	if c.alias != "" {
		return c.alias
	}

	return c.name
}

func (c column) expr() string {
	if c.alias == "" {
		return c.table + "." + c.name
	}

	return c.table + "." + c.name + " AS " + c.alias
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// preparer is satisfied by both *sqlx.DB and *sqlx.Tx, so reads can join a transaction.
type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Joiner is implemented by read models that pull columns from other tables. The
// returned clause is appended after FROM.
type Joiner interface {
	GetJoinQuery() string
}

// Repository maps T onto one table. Fields tagged db are selected and inserted;
// fields that also carry table:"other" come from the Joiner clause and are only
// selected. Anonymous struct fields, such as the audit metadata, are flattened.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   string
	entity  string
	primary string
	columns []column
	inserts []string
	join    string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, inserts := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(Joiner); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:      db,
		otel:    otl,
		table:   tableName,
		entity:  entityName,
		primary: primaryColumn,
		columns: columns,
		inserts: inserts,
		join:    join,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

// fail logs and traces err and wraps it with the operation and entity.
func (repo *Repository[T]) fail(scope otel.Scope, what string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", what, repo.entity, err)
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	placeholders := make([]string, len(repo.inserts))
	for i, col := range repo.inserts {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.inserts, ", "), strings.Join(placeholders, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.insert(ctx, tx, model)
}

// queryRow runs query and scans a single row into dest. sql.ErrNoRows is passed
// through unwrapped so callers can decide what a miss means.
func (repo *Repository[T]) queryRow(ctx context.Context, db preparer, scope otel.Scope, query string, args map[string]any, dest any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, dest, args)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return repo.fail(scope, "query data", err)
	}

	return err //nolint:wrapcheck
}

func (repo *Repository[T]) exist(ctx context.Context, db preparer, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	err := repo.queryRow(ctx, db, scope, fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where), args, &exist)

	return exist, err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, filter)
}

func (repo *Repository[T]) ExistTx(ctx context.Context, tx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, tx, filter)
}

func (repo *Repository[T]) get(ctx context.Context, db preparer, lock string, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	var model T

	query := strings.TrimSpace(fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.selectList(columns...), repo.table, repo.join, where, lock))

	err := repo.queryRow(ctx, db, scope, query, args, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// Get returns the zero value of T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, "", filter, columns...)
}

func (repo *Repository[T]) GetTx(ctx context.Context, tx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, tx, "", filter, columns...)
}

// GetForUpdateTx is GetTx holding a row lock until tx ends. Writers to the same row
// wait for it and then re-check their guards against what tx committed.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	if len(filter.Filters) == 0 {
		var zero T

		return zero, errRequiredFilter
	}

	return repo.get(ctx, tx, lockForUpdate, filter, columns...)
}

func (repo *Repository[T]) getAll(ctx context.Context, db preparer, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	var pagination string

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s", repo.selectList(columns...), repo.table, repo.join, where, repo.orderBy(params), pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

// GetAll orders by params.SortBy as given, so it must come from a whitelist.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, params, filter, columns...)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, tx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, tx, params, filter, columns...)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	var count int

	err := repo.queryRow(ctx, repo.db.Read, scope, fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primary, repo.table, repo.join, where), args, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}

	return count, err
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	sets := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		sets = append(sets, col+" = :"+col)
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, mod)

	res, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "update data", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	scope.SetAttribute("db.rows_affected", affected)

	return affected, nil
}

// UpdateCount reports how many rows the filter matched. Guarded writes rely on it:
// zero means the guarded value had already changed.
func (repo *Repository[T]) UpdateCount(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateCountTx(ctx context.Context, tx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, tx, mod, filter)
}

// selectList renders the column list, restricted to the given db names when any are
// given.
func (repo *Repository[T]) selectList(names ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(names) > 0 && !slices.Contains(names, col.key()) {
			continue
		}

		exprs = append(exprs, col.expr())
	}

	return strings.Join(exprs, ", ")
}

// orderBy qualifies a bare sort column with the base table once a join is in
// play, where names like created_at would otherwise be ambiguous.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if params.SortBy == "" {
		return ""
	}

	sortBy := params.SortBy
	if repo.join != "" && !strings.ContainsAny(sortBy, ".,") {
		sortBy = repo.table + "." + sortBy
	}

	if params.SortDir != "" {
		sortBy += " " + params.SortDir
	}

	return "ORDER BY " + sortBy
}

// BuildWhereClause renders filter as a WHERE clause, or "" when it is empty.
func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func getColumns(table string, t reflect.Type) (columns []column, inserts []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInserts := getColumns(table, field.Type)
			columns = append(columns, nested...)
			inserts = append(inserts, nestedInserts...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		source := field.Tag.Get("table")
		if source == "" || source == table {
			inserts = append(inserts, name)
			source = table
		}

		if renamed := field.Tag.Get("column"); renamed != "" {
			columns = append(columns, column{name: renamed, table: source, alias: name})
		} else {
			columns = append(columns, column{name: name, table: source})
		}
	}

	return columns, inserts
}
