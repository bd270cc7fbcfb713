package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFallbackUsers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []FallbackUser
	}{
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "full entries",
			raw:  "u1|Alice|alice@example.com,u2|Bob|bob@example.com",
			want: []FallbackUser{
				{UserID: "u1", Name: "Alice", Email: "alice@example.com"},
				{UserID: "u2", Name: "Bob", Email: "bob@example.com"},
			},
		},
		{
			name: "email optional",
			raw:  "u1|Alice",
			want: []FallbackUser{{UserID: "u1", Name: "Alice"}},
		},
		{
			name: "malformed entries dropped",
			raw:  "u1|Alice,broken,|NoID|x@example.com",
			want: []FallbackUser{{UserID: "u1", Name: "Alice"}},
		},
		{
			name: "whitespace tolerated",
			raw:  " u1|Alice|alice@example.com , u2|Bob ",
			want: []FallbackUser{
				{UserID: "u1", Name: "Alice", Email: "alice@example.com"},
				{UserID: "u2", Name: "Bob"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFallbackUsers(tt.raw))
		})
	}
}
