package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.rigtool.dev/rig/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	tests := []struct {
		name     string
		ciValue  string
		expected detector.OutputMode
	}{
		{
			name:     "CI=true forces plain mode",
			ciValue:  "true",
			expected: detector.ModePlain,
		},
		{
			name:     "CI=1 forces plain mode",
			ciValue:  "1",
			expected: detector.ModePlain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)
			assert.Equal(t, tt.expected, detector.DetectEnvironment())
		})
	}
}

func TestDetectEnvironment_NonTTY(t *testing.T) {
	t.Setenv("CI", "")
	// Test binaries never run with stdout attached to a terminal.
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		auto     detector.OutputMode
		flag     string
		expected detector.OutputMode
	}{
		{name: "styled override", auto: detector.ModePlain, flag: "styled", expected: detector.ModeStyled},
		{name: "plain override", auto: detector.ModeStyled, flag: "plain", expected: detector.ModePlain},
		{name: "ci alias", auto: detector.ModeStyled, flag: "ci", expected: detector.ModePlain},
		{name: "auto keeps detection", auto: detector.ModeStyled, flag: "auto", expected: detector.ModeStyled},
		{name: "empty keeps detection", auto: detector.ModePlain, flag: "", expected: detector.ModePlain},
		{name: "unknown keeps detection", auto: detector.ModeStyled, flag: "bogus", expected: detector.ModeStyled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.auto, tt.flag))
		})
	}
}
