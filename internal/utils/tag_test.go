package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnTag(t *testing.T) {
	testCases := []struct {
		name     string
		tag      string
		wantCol  string
		wantSkip bool
		wantErr  bool
	}{
		{name: "empty", tag: ""},
		{name: "skip", tag: "-", wantSkip: true},
		{name: "column", tag: "column_name:nick", wantCol: "nick"},
		{name: "unknown key", tag: "size:10", wantErr: true},
		{name: "missing value", tag: "column_name:", wantErr: true},
		{name: "malformed", tag: "column_name", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			col, skip, err := ParseColumnTag(tc.tag)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCol, col)
			assert.Equal(t, tc.wantSkip, skip)
		})
	}
}
