package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Difficulties: []uint64{1, 2, 3},
		Trials:       10,
		Workers:      2,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name: "no difficulties",
			mutate: func(c *Config) {
				c.Difficulties = nil
			},
			wantErr: "no difficulty levels",
		},
		{
			name: "zero difficulty",
			mutate: func(c *Config) {
				c.Difficulties = []uint64{1, 0, 3}
			},
			wantErr: "is zero",
		},
		{
			name: "decreasing difficulties",
			mutate: func(c *Config) {
				c.Difficulties = []uint64{3, 2, 1}
			},
			wantErr: "strictly increasing",
		},
		{
			name: "repeated difficulty",
			mutate: func(c *Config) {
				c.Difficulties = []uint64{1, 2, 2}
			},
			wantErr: "strictly increasing",
		},
		{
			name: "zero trials",
			mutate: func(c *Config) {
				c.Trials = 0
			},
			wantErr: "trials must be positive",
		},
		{
			name: "zero workers",
			mutate: func(c *Config) {
				c.Workers = 0
			},
			wantErr: "workers must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)

			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				r.NoError(err)
				return
			}

			r.Error(err)
			r.Contains(err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestCapFor(t *testing.T) {
	r := require.New(t)

	explicit := Config{MaxAttempts: 500}
	r.Equal(uint64(500), explicit.capFor(1000))

	derived := Config{}
	r.Equal(uint64(100_000), derived.capFor(1000))

	// Near the top of the range the 100x margin saturates.
	huge := derived.capFor(math.MaxUint64/100 + 1)
	r.Equal(uint64(math.MaxUint64), huge)
}
