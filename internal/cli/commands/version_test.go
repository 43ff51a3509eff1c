package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
	}{
		{
			name:    "release version",
			info:    BuildInfo{Version: "0.1.0", BuildDate: "2026-01-02", GitCommit: "abc123"},
			wantOut: []string{"sqlfront v0.1.0", "commit abc123", "built 2026-01-02"},
		},
		{
			name:    "dev version",
			info:    BuildInfo{Version: "dev", BuildDate: "unknown", GitCommit: "unknown"},
			wantOut: []string{"sqlfront vdev", "commit unknown"},
		},
		{
			name:    "lists dialects",
			info:    BuildInfo{Version: "1.2.3"},
			wantOut: []string{"dialects: [", "mysql", "postgresql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())
			for _, want := range tt.wantOut {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "test"})

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
