package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	Version = "1.4.2"
	defer func() { Version = "dev" }()

	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "flowconfig 1.4.2 (schema v0.4)\n", out)
}

func TestVersionCmd_JSON(t *testing.T) {
	Version = "1.4.2-rc.1+abc123"
	defer func() { Version = "dev" }()

	out, err := execute(t, "version", "-o", "json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, map[string]string{"version": "1.4.2-rc.1+abc123", "schema": "v0.4"}, got)
}

func TestVersionCmd_DefaultIsDev(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "flowconfig dev (schema v0.4)\n", out)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "version", "extra")
	require.Error(t, err)
}
