package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
		check   func(t *testing.T, p Params)
	}{
		{
			name: "empty query",
			raw:  "",
			check: func(t *testing.T, p Params) {
				assert.Nil(t, p.Text)
				assert.Nil(t, p.Limit)
				assert.Nil(t, p.FieldID)
				assert.Nil(t, p.Priority)
				assert.Nil(t, p.IsDone)
			},
		},
		{
			name: "all parameters typed",
			raw:  "text=Work&limit=5&fieldID=abcde&priority=1.5&isDone=true",
			check: func(t *testing.T, p Params) {
				require.NotNil(t, p.Text)
				assert.Equal(t, "Work", *p.Text)
				require.NotNil(t, p.Limit)
				assert.Equal(t, int64(5), *p.Limit)
				require.NotNil(t, p.FieldID)
				assert.Equal(t, "abcde", *p.FieldID)
				require.NotNil(t, p.Priority)
				assert.Equal(t, 1.5, *p.Priority)
				require.NotNil(t, p.IsDone)
				assert.True(t, *p.IsDone)
			},
		},
		{
			name:    "non-numeric limit",
			raw:     "limit=abc",
			wantMsg: `"limit" must be a number`,
		},
		{
			name:    "limit below one",
			raw:     "limit=0",
			wantMsg: `"limit" must be at least 1`,
		},
		{
			name:    "short text",
			raw:     "text=ab",
			wantMsg: `"text" must be at least 3 characters long`,
		},
		{
			name:    "short fieldID",
			raw:     "fieldID=abcd",
			wantMsg: `"fieldID" must be at least 5 characters long`,
		},
		{
			name:    "non-numeric priority",
			raw:     "priority=high",
			wantMsg: `"priority" must be a number`,
		},
		{
			name:    "malformed isDone",
			raw:     "isDone=maybe",
			wantMsg: `"isDone" must be a boolean`,
		},
		{
			name:    "unknown parameter",
			raw:     "delay=2s",
			wantMsg: `"delay" is not allowed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			p, err := Parse(values)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, err.Error())
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}
