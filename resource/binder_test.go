package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinder_Bind(t *testing.T) {
	b := NewBinder()
	hm := NewValueHashMap()

	k1, err := b.Bind("Alice", hm)
	require.NoError(t, err)
	k2, err := b.Bind(5, hm)
	require.NoError(t, err)
	k3, err := b.Bind("Alice", hm)
	require.NoError(t, err)

	assert.Equal(t, "p1", k1)
	assert.Equal(t, "p2", k2)
	assert.Equal(t, k1, k3)
	assert.Equal(t, 2, hm.Len())
	assert.Equal(t, []string{"p1", "p2"}, hm.Keys())
	assert.Equal(t, map[string]any{"p1": "Alice", "p2": 5}, hm.Params())
	assert.Equal(t, ":p1", b.Marker(k1))
}

func TestBinder_BindTypeAware(t *testing.T) {
	b := NewBinder()
	hm := NewValueHashMap()

	testCases := []struct {
		name string
		val  any
	}{
		{name: "int", val: 5},
		{name: "int64", val: int64(5)},
		{name: "string", val: "5"},
		{name: "float", val: 5.0},
		{name: "bool", val: true},
		{name: "nil", val: nil},
		{name: "bytes", val: []byte("5")},
		{name: "time", val: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}

	keys := make(map[string]struct{})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := b.Bind(tc.val, hm)
			require.NoError(t, err)
			keys[key] = struct{}{}

			again, err := b.Bind(tc.val, hm)
			require.NoError(t, err)
			assert.Equal(t, key, again)
		})
	}
	assert.Len(t, keys, len(testCases))
	assert.Equal(t, len(testCases), hm.Len())
}

func TestBinder_Collision(t *testing.T) {
	b := &Binder{
		prefix: "p",
		digest: func(string) uint64 { return 42 },
	}
	hm := NewValueHashMap()

	_, err := b.Bind("a", hm)
	require.NoError(t, err)

	_, err = b.Bind("b", hm)
	assert.ErrorIs(t, err, ErrInternalConsistency)
	assert.Equal(t, 1, hm.Len())

	v, ok := hm.Get("p1")
	assert.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestValueHashMap_Params(t *testing.T) {
	b := NewBinder()
	hm := NewValueHashMap()
	_, err := b.Bind("x", hm)
	require.NoError(t, err)

	params := hm.Params()
	params["p1"] = "changed"

	v, _ := hm.Get("p1")
	assert.Equal(t, "x", v)
}
