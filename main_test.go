package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "platform flags",
			args: []string{"-pid", "42", "-rid", "7", "-authToken", "abc", "-reportOpts", `{"a":"b"}`},
			want: []string{"--projectID", "42", "--reportID", "7", "--authToken", "abc", "--reportOptions", `{"a":"b"}`},
		},
		{
			name: "inline values",
			args: []string{"-pid=42", "-baseURL=https://ci.example.com:8888"},
			want: []string{"--projectID=42", "--baseURL=https://ci.example.com:8888"},
		},
		{
			name: "long flags untouched",
			args: []string{"--projectID", "42", "--no-color", "-v"},
			want: []string{"--projectID", "42", "--no-color", "-v"},
		},
		{
			name: "values are not rewritten",
			args: []string{"-reportOpts", "-pid", "-rid", "7"},
			want: []string{"--reportOptions", "-pid", "--reportID", "7"},
		},
		{
			name: "empty",
			args: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs(tt.args))
		})
	}
}
