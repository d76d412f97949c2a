package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, tables ...string) *Builder {
	t.Helper()
	fields, err := NewFieldColumnMap(Map("name", "n"), Map("id", "uid"))
	require.NoError(t, err)
	return NewBuilder(BacktickEscaper{}, NewBinder(), NewTranslator(fields, tables, true), DefaultTemplates())
}

func TestBuilder_Select(t *testing.T) {
	testCases := []struct {
		name      string
		stmt      SelectStatement
		wantQuery *Query
		wantErr   error
	}{
		{
			name: "no field list",
			stmt: SelectStatement{Tables: []string{"users"}},
			wantQuery: &Query{
				SQL:    "SELECT * FROM `users`",
				Params: map[string]any{},
			},
		},
		{
			name: "with fields and where",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Fields: []string{"name", "id"},
				Where:  And(Ref("name").Eq("Alice"), Ref("id").Gt(5)),
			},
			wantQuery: &Query{
				SQL:    "SELECT `n`, `uid` FROM `users` WHERE (`n` = :p1) AND (`uid` > :p2)",
				Params: map[string]any{"p1": "Alice", "p2": 5},
			},
		},
		{
			name: "single comparison is wrapped",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Where:  Ref("id").Eq(5),
			},
			wantQuery: &Query{
				SQL:    "SELECT * FROM `users` WHERE (`uid` = :p1)",
				Params: map[string]any{"p1": 5},
			},
		},
		{
			name: "implicit cross join",
			stmt: SelectStatement{Tables: []string{"users", "orders"}},
			wantQuery: &Query{
				SQL:    "SELECT * FROM `users`, `orders`",
				Params: map[string]any{},
			},
		},
		{
			name: "order limit offset",
			stmt: SelectStatement{
				Tables:  []string{"users"},
				Fields:  []string{"id"},
				Where:   Ref("name").Like("A%"),
				OrderBy: []OrderBy{Desc("id"), Asc("name")},
				Limit:   10,
				Offset:  20,
			},
			wantQuery: &Query{
				SQL:    "SELECT `uid` FROM `users` WHERE (`n` LIKE :p1) ORDER BY `uid` DESC, `n` LIMIT 10 OFFSET 20",
				Params: map[string]any{"p1": "A%"},
			},
		},
		{
			name: "qualified foreign column",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Fields: []string{"users.name", "orders.total"},
				Joins:  []JoinCondition{JoinOn(Ref("users.id").Eq(Ref("orders.user_id")))},
			},
			wantQuery: &Query{
				SQL:    "SELECT `users`.`n`, `orders`.`total` FROM `users` INNER JOIN `orders` ON (`users`.`uid` = `orders`.`user_id`)",
				Params: map[string]any{},
			},
		},
		{
			name: "offset without limit",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Fields: []string{"name"},
				Offset: 5,
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "offset with limit",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Fields: []string{"name"},
				Limit:  1,
				Offset: 5,
			},
			wantQuery: &Query{
				SQL:    "SELECT `n` FROM `users` LIMIT 1 OFFSET 5",
				Params: map[string]any{},
			},
		},
		{
			name:    "no table",
			stmt:    SelectStatement{},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "unknown field",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Fields: []string{"age"},
			},
			wantErr: ErrNotFound,
		},
		{
			name: "unknown order by",
			stmt: SelectStatement{
				Tables:  []string{"users"},
				OrderBy: []OrderBy{Asc("age")},
			},
			wantErr: ErrNotFound,
		},
		{
			name: "unsupported where",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Where:  Expr(Operator("GLOB"), Ref("name"), Lit("a*")),
			},
			wantErr: ErrUnsupportedExpression,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBuilder(t, "users")
			query, err := b.Select(tc.stmt)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, query)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantQuery, query)
		})
	}
}
