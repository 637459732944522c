package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/pathcheck/internal/config"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    config.Config
		wantErr error
	}{
		{
			name: "empty",
			yaml: "",
			want: config.Default(),
		},
		{
			name: "full",
			yaml: `
limits:
  max_steps: 100
  max_block_visits: 3
workers: 2
checks:
  constcond: true
  nilderef: false
nilcheck_funcs:
  - example.com/util.IsNil
`,
			want: config.Config{
				Limits:        config.Limits{MaxSteps: 100, MaxBlockVisits: 3},
				Workers:       2,
				Checks:        map[string]bool{"constcond": true, "nilderef": false},
				NilCheckFuncs: []string{"example.com/util.IsNil"},
			},
		},
		{
			name: "partial keeps defaults",
			yaml: "workers: 1\n",
			want: func() config.Config {
				c := config.Default()
				c.Workers = 1
				return c
			}(),
		},
		{
			name:    "negative",
			yaml:    "limits:\n  max_steps: -1\n",
			wantErr: config.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Parse([]byte(tt.yaml))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("max_steps: 10\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(t.TempDir(), "pathcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 3\n"), 0o600))
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
