// Package config loads a World's Tunables from YAML. The simulation
// itself persists nothing; this is a convenience for host applications
// that keep their tuning knobs in a config file rather than hardcoding
// feather.DefaultTunables() overrides in Go.
package config

import (
	"fmt"
	"os"

	feather "github.com/go-feather/rigidcore"
	"github.com/go-feather/rigidcore/mathutil"
	"gopkg.in/yaml.v3"
)

// vec3 mirrors mathutil.Vec3's three components for YAML decoding;
// mathutil.Vec3 has no field tags of its own to unmarshal into.
type vec3 struct {
	X, Y, Z float64
}

func (v vec3) toMathutil() mathutil.Vec3 {
	return mathutil.Vec3{v.X, v.Y, v.Z}
}

// document is the on-disk shape. Every field is a pointer so that a
// partial file only overrides the defaults it mentions; fields left out
// keep feather.DefaultTunables()'s value.
type document struct {
	Gravity                *vec3    `yaml:"gravity"`
	AngleLimitDegrees      *float64 `yaml:"angleLimitDegrees"`
	BaumgarteFactor        *float64 `yaml:"baumgarteFactor"`
	Slop                   *float64 `yaml:"slop"`
	FrictionMultiplier     *float64 `yaml:"frictionMultiplier"`
	SolverIterations       *int     `yaml:"solverIterations"`
	CollisionThreshold     *int     `yaml:"collisionThreshold"`
	SubstepGrowth          *int     `yaml:"substepGrowth"`
	MaxSubsteps            *int     `yaml:"maxSubsteps"`
	TiltIntervalSeconds    *float64 `yaml:"tiltIntervalSeconds"`
	DampingLinear          *float64 `yaml:"dampingLinear"`
	DampingAngularBase     *float64 `yaml:"dampingAngularBase"`
	DampingAngularNearFlat *float64 `yaml:"dampingAngularNearFlat"`
	DampingAngularNearZero *float64 `yaml:"dampingAngularNearZero"`
}

// Load reads a YAML file at path and returns a Tunables starting from
// feather.DefaultTunables(), with every field the file sets overridden.
func Load(path string) (feather.Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return feather.Tunables{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a Tunables the same way Load does,
// starting from feather.DefaultTunables().
func Parse(data []byte) (feather.Tunables, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return feather.Tunables{}, fmt.Errorf("config: parse: %w", err)
	}

	t := feather.DefaultTunables()
	if doc.Gravity != nil {
		t.Gravity = doc.Gravity.toMathutil()
	}
	if doc.AngleLimitDegrees != nil {
		t.AngleLimitDegrees = *doc.AngleLimitDegrees
	}
	if doc.BaumgarteFactor != nil {
		t.BaumgarteFactor = *doc.BaumgarteFactor
	}
	if doc.Slop != nil {
		t.Slop = *doc.Slop
	}
	if doc.FrictionMultiplier != nil {
		t.FrictionMultiplier = *doc.FrictionMultiplier
	}
	if doc.SolverIterations != nil {
		t.SolverIterations = *doc.SolverIterations
	}
	if doc.CollisionThreshold != nil {
		t.CollisionThreshold = *doc.CollisionThreshold
	}
	if doc.SubstepGrowth != nil {
		t.SubstepGrowth = *doc.SubstepGrowth
	}
	if doc.MaxSubsteps != nil {
		t.MaxSubsteps = *doc.MaxSubsteps
	}
	if doc.TiltIntervalSeconds != nil {
		t.TiltIntervalSeconds = *doc.TiltIntervalSeconds
	}
	if doc.DampingLinear != nil {
		t.DampingLinear = *doc.DampingLinear
	}
	if doc.DampingAngularBase != nil {
		t.DampingAngularBase = *doc.DampingAngularBase
	}
	if doc.DampingAngularNearFlat != nil {
		t.DampingAngularNearFlat = *doc.DampingAngularNearFlat
	}
	if doc.DampingAngularNearZero != nil {
		t.DampingAngularNearZero = *doc.DampingAngularNearZero
	}

	return t, nil
}
