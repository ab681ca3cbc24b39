package config

import (
	"testing"

	feather "github.com/go-feather/rigidcore"
	"github.com/go-feather/rigidcore/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Parse
// =============================================================================

func TestParse_EmptyDocumentKeepsDefaults(t *testing.T) {
	tun, err := Parse([]byte(``))
	require.NoError(t, err)
	assert.Equal(t, feather.DefaultTunables(), tun)
}

func TestParse_OverridesOnlyMentionedFields(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want func(feather.Tunables) bool
	}{
		{
			name: "gravity",
			yaml: "gravity: {x: 0, y: -20, z: 0}\n",
			want: func(t feather.Tunables) bool { return t.Gravity == (mathutil.Vec3{0, -20, 0}) },
		},
		{
			name: "solverIterations",
			yaml: "solverIterations: 4\n",
			want: func(t feather.Tunables) bool { return t.SolverIterations == 4 },
		},
		{
			name: "baumgarteFactor",
			yaml: "baumgarteFactor: 0.35\n",
			want: func(t feather.Tunables) bool { return t.BaumgarteFactor == 0.35 },
		},
		{
			name: "tiltIntervalSeconds",
			yaml: "tiltIntervalSeconds: 0.1\n",
			want: func(t feather.Tunables) bool { return t.TiltIntervalSeconds == 0.1 },
		},
		{
			name: "dampingAngularNearZero",
			yaml: "dampingAngularNearZero: 0.7\n",
			want: func(t feather.Tunables) bool { return t.DampingAngularNearZero == 0.7 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			assert.True(t, tt.want(tun), "override did not apply: %+v", tun)
		})
	}
}

func TestParse_UnmentionedFieldsKeepDefaults(t *testing.T) {
	tun, err := Parse([]byte("solverIterations: 4\n"))
	require.NoError(t, err)

	defaults := feather.DefaultTunables()
	assert.Equal(t, defaults.MaxSubsteps, tun.MaxSubsteps)
	assert.Equal(t, defaults.Slop, tun.Slop)
}

func TestParse_InvalidYAMLReturnsError(t *testing.T) {
	_, err := Parse([]byte("gravity: [this is not a mapping\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/tunables.yaml")
	assert.Error(t, err)
}
