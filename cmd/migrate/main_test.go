package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    invocation
		wantErr string
	}{
		{name: "up", args: []string{"up"}, want: invocation{command: "up"}},
		{name: "case and spaces", args: []string{" Status "}, want: invocation{command: "status"}},
		{name: "down latest", args: []string{"down"}, want: invocation{command: "down"}},
		{name: "down version", args: []string{"down", "3"}, want: invocation{command: "down", version: 3}},
		{name: "no command", args: nil, wantErr: "usage"},
		{name: "unknown", args: []string{"sideways"}, wantErr: "unknown command"},
		{name: "extra arg", args: []string{"verify", "1"}, wantErr: "takes no arguments"},
		{name: "bad version", args: []string{"down", "x"}, wantErr: "invalid version"},
		{name: "zero version", args: []string{"down", "0"}, wantErr: "invalid version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
