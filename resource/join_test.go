package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Joins(t *testing.T) {
	testCases := []struct {
		name      string
		stmt      SelectStatement
		wantQuery *Query
		wantErr   error
	}{
		{
			name: "single join",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Joins:  []JoinCondition{JoinOn(Ref("users.id").Eq(Ref("orders.user_id")))},
				Where:  Ref("orders.total").Gt(100),
			},
			wantQuery: &Query{
				SQL:    "SELECT * FROM `users` INNER JOIN `orders` ON (`users`.`uid` = `orders`.`user_id`) WHERE (`orders`.`total` > :p1)",
				Params: map[string]any{"p1": 100},
			},
		},
		{
			name: "join with literal shares hash map with where",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Joins: []JoinCondition{JoinOn(And(
					Ref("users.id").Eq(Ref("orders.user_id")),
					Ref("orders.state").Eq("paid"),
				))},
				Where: Ref("users.name").Neq("paid"),
			},
			wantQuery: &Query{
				SQL: "SELECT * FROM `users` INNER JOIN `orders` ON ((`users`.`uid` = `orders`.`user_id`) AND (`orders`.`state` = :p1))" +
					" WHERE (`users`.`n` <> :p1)",
				Params: map[string]any{"p1": "paid"},
			},
		},
		{
			name: "chained joins",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Joins: []JoinCondition{
					JoinOn(Ref("orders.user_id").Eq(Ref("users.id"))),
					JoinOn(Ref("orders.id").Eq(Ref("items.order_id"))),
				},
			},
			wantQuery: &Query{
				SQL: "SELECT * FROM `users`" +
					" INNER JOIN `orders` ON (`orders`.`user_id` = `users`.`uid`)" +
					" INNER JOIN `items` ON (`orders`.`id` = `items`.`order_id`)",
				Params: map[string]any{},
			},
		},
		{
			name: "second configured table is joined not listed",
			stmt: SelectStatement{
				Tables: []string{"users", "orders"},
				Joins:  []JoinCondition{JoinOn(Ref("users.id").Eq(Ref("orders.user_id")))},
			},
			wantQuery: &Query{
				SQL:    "SELECT * FROM `users` INNER JOIN `orders` ON (`users`.`uid` = `orders`.`user_id`)",
				Params: map[string]any{},
			},
		},
		{
			name: "configured table left out of joins",
			stmt: SelectStatement{
				Tables: []string{"users", "orders", "items"},
				Joins:  []JoinCondition{JoinOn(Ref("users.id").Eq(Ref("orders.user_id")))},
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "condition names no new table",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Joins:  []JoinCondition{JoinOn(Ref("users.id").Eq(1))},
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "nil condition",
			stmt: SelectStatement{
				Tables: []string{"users"},
				Joins:  []JoinCondition{{}},
			},
			wantErr: ErrInvalidArgument,
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

func TestJoinCondition_Table(t *testing.T) {
	j := JoinOn(And(Ref("a.x").Eq(Ref("b.y")), Ref("c.z").Eq(1)))

	table, ok := j.Table(map[string]struct{}{"a": {}})
	require.True(t, ok)
	assert.Equal(t, "b", table)

	table, ok = j.Table(map[string]struct{}{"a": {}, "b": {}})
	require.True(t, ok)
	assert.Equal(t, "c", table)

	_, ok = j.Table(map[string]struct{}{"a": {}, "b": {}, "c": {}})
	assert.False(t, ok)
}
