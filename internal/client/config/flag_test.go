package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://bank:9090", "-r", "teller", "-s", "redis", "-redis", "redis://r:6379/1",
				"-d", "x.db", "-t", "5", "-l", "debug", "-data", "/tmp/mb"},
			expected: &Config{ServerURL: "http://bank:9090", Role: "teller", StoreDriver: "redis", RedisURL: "redis://r:6379/1",
				DatabaseDSN: "x.db", RequestTimeout: 5 * time.Second, LogLevel: "debug", DataDir: "/tmp/mb"},
		},
		{
			name:     "config file flag is ignored here",
			args:     []string{"cmd", "-c", "conf.json", "-r", "admin"},
			expected: &Config{Role: "admin"},
		},
		{name: "bad timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
