package repository

import (
	"context"
	"reflect"
	"testing"

	"roomslot/infras/otel/mocks"
	"roomslot/infras/postgres"
	"roomslot/shared/dto"
	"roomslot/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Note  string `db:"-"`
	Owner string
	model.Metadata
}

type widgetView struct {
	widget
	ShelfCode string `column:"code" db:"shelf_code" table:"shelves"`
	ShelfRow  int    `column:"row"  db:"shelf_row"  table:"shelves"`
}

func (widgetView) GetJoinQuery() string {
	return "JOIN shelves ON shelves.id = widgets.shelf_id"
}

func TestGetColumns(t *testing.T) {
	columns, inserts := getColumns("widgets", reflect.TypeOf(widgetView{}))

	assert.Equal(t, []string{"id", "name", "created_at", "modified_at", "created_by", "modified_by"}, inserts)

	exprs := make([]string, 0, len(columns))
	for _, col := range columns {
		exprs = append(exprs, col.expr())
	}

	assert.Equal(t, []string{
		"widgets.id",
		"widgets.name",
		"widgets.created_at",
		"widgets.modified_at",
		"widgets.created_by",
		"widgets.modified_by",
		"shelves.code AS shelf_code",
		"shelves.row AS shelf_row",
	}, exprs)
}

func TestNewRepository_Join(t *testing.T) {
	plain := NewRepository[widget]("widget", "widgets", "id", nil, mocks.NewOtel())
	assert.Empty(t, plain.join)

	view := NewRepository[widgetView]("widget", "widgets", "id", nil, mocks.NewOtel())
	assert.Equal(t, "JOIN shelves ON shelves.id = widgets.shelf_id", view.join)
}

func TestSelectList(t *testing.T) {
	repo := NewRepository[widgetView]("widget", "widgets", "id", nil, mocks.NewOtel())

	assert.Equal(t, "widgets.id, shelves.code AS shelf_code", repo.selectList("id", "shelf_code"))
	assert.Empty(t, repo.selectList("unknown"))
	assert.Contains(t, repo.selectList(), "shelves.row AS shelf_row")
}

func TestOrderBy(t *testing.T) {
	plain := NewRepository[widget]("widget", "widgets", "id", nil, mocks.NewOtel())
	view := NewRepository[widgetView]("widget", "widgets", "id", nil, mocks.NewOtel())

	tests := []struct {
		name   string
		repo   interface{ orderBy(dto.QueryParams) string }
		params dto.QueryParams
		want   string
	}{
		{name: "no sort", repo: &plain, params: dto.QueryParams{SortDir: "ASC"}, want: ""},
		{name: "bare column", repo: &plain, params: dto.QueryParams{SortBy: "created_at", SortDir: "DESC"}, want: "ORDER BY created_at DESC"},
		{name: "bare column with join", repo: &view, params: dto.QueryParams{SortBy: "created_at"}, want: "ORDER BY widgets.created_at"},
		{name: "qualified column", repo: &view, params: dto.QueryParams{SortBy: "shelves.code", SortDir: "ASC"}, want: "ORDER BY shelves.code ASC"},
		{name: "column list", repo: &view, params: dto.QueryParams{SortBy: "shelves.code, widgets.name"}, want: "ORDER BY shelves.code, widgets.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.repo.orderBy(tt.params))
		})
	}
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[widget]("widget", "widgets", "id", nil, mocks.NewOtel())

	where, args := repo.BuildWhereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.NotNil(t, args)

	filter := dto.And(dto.Eq("widgets", "id", "w-1"))
	filter.Add(dto.Guard("was", "widgets", "name", "old"))

	where, args = repo.BuildWhereClause(filter)
	assert.Equal(t, "WHERE (widgets.id = :id AND widgets.name = :was_name)", where)
	assert.Equal(t, map[string]any{"id": "w-1", "was_name": "old"}, args)
}

func TestWritesRequireFilter(t *testing.T) {
	repo := NewRepository[widget]("widget", "widgets", "id", &postgres.Connection{}, mocks.NewOtel())

	_, err := repo.UpdateCount(context.Background(), map[string]any{"name": "new"}, dto.FilterGroup{})
	require.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	require.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.GetForUpdateTx(context.Background(), nil, dto.FilterGroup{})
	require.ErrorIs(t, err, errRequiredFilter)
}
