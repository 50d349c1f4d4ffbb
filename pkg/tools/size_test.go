package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizeToMB(t *testing.T) {
	cases := []struct {
		in   string
		want uint
	}{
		{"512", 512},
		{"512m", 512},
		{"512mb", 512},
		{"512MB", 512},
		{"2g", 2048},
		{"2gb", 2048},
		{"0", 0},
		{" 1024 ", 1024},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSizeToMB(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSizeToMBInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "12k", "1.5g", "g", "12 mb"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSizeToMB(in)
			assert.Error(t, err)
		})
	}
}

func TestValidateImageName(t *testing.T) {
	for _, image := range []string{"python:3.11-slim", "ubuntu", "library/redis:7", "ghcr.io/foo/bar:latest"} {
		assert.NoError(t, ValidateImageName(image), image)
	}
	for _, image := range []string{"", "UPPER", "has space", ":tagonly"} {
		assert.Error(t, ValidateImageName(image), image)
	}
}
