package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	fields := map[string]string{"type": "glfs", "name": "base"}
	var buf bytes.Buffer
	err := WriteJSON(&buf, fields)
	require.NoError(t, err)
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))

	var parsed map[string]string
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Equal(t, fields, parsed)
}

func TestWriteJSON_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "marshaling to JSON")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteYAML(&buf, map[string]any{"identifier": "root", "tags": []string{"a"}})
	require.NoError(t, err)
	require.Equal(t, "identifier: root\ntags:\n  - a\n", buf.String())
}

func TestWriteField(t *testing.T) {
	fields := map[string]string{"digest": "abc"}
	var buf bytes.Buffer
	err := WriteField(&buf, fields, "digest")
	require.NoError(t, err)
	require.Equal(t, "abc\n", buf.String())
}

func TestWriteField_Unknown(t *testing.T) {
	fields := map[string]string{"digest": "abc"}
	var buf bytes.Buffer
	err := WriteField(&buf, fields, "NonExistent")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown field")
}

func TestWriteAll(t *testing.T) {
	fields := map[string]string{"type": "branch", "branchName": "develop"}
	var buf bytes.Buffer
	err := WriteAll(&buf, fields)
	require.NoError(t, err)
	require.Equal(t, "branchName=develop\ntype=branch\n", buf.String())
}
