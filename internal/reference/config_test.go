package reference

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigRef_Literals(t *testing.T) {
	tests := []struct {
		uri    string
		want   ConfigRef
		fields map[string]string
	}{
		{
			"config://",
			ConfigSource{},
			map[string]string{"type": "config"},
		},
		{
			"config://ignored/qualifier",
			ConfigSource{},
			map[string]string{"type": "config"},
		},
		{
			"file:///etc/repo.yml",
			FileRef{Path: "/etc/repo.yml"},
			map[string]string{"type": "file", "path": "/etc/repo.yml"},
		},
		{
			"branch://release/1.0",
			BranchRef{BranchName: "release/1.0"},
			map[string]string{"type": "branch", "branchName": "release/1.0"},
		},
		{
			"https://example.com/cfg.yml",
			HTTPRef{Scheme: "https", URL: "example.com/cfg.yml"},
			map[string]string{"type": "http", "protocol": "https", "url": "example.com/cfg.yml"},
		},
		{
			"http://example.com:8080/a/b.yml?ref=x",
			HTTPRef{Scheme: "http", URL: "example.com:8080/a/b.yml?ref=x"},
			map[string]string{"type": "http", "protocol": "http", "url": "example.com:8080/a/b.yml?ref=x"},
		},
		{
			"glfs://host1/ns1/cfgname",
			GLFSRef{Hostname: "host1", Namespace: "ns1", Name: "cfgname"},
			map[string]string{"type": "glfs", "hostname": "host1", "namespace": "ns1", "name": "cfgname"},
		},
		{
			"glfs://ns1/cfgname",
			GLFSRef{Namespace: "ns1", Name: "cfgname"},
			map[string]string{"type": "glfs", "namespace": "ns1", "name": "cfgname"},
		},
		{
			"glfs://host1/ns1/support-2/cfgname",
			GLFSRef{Hostname: "host1", Namespace: "ns1", Support: "support-2", Name: "cfgname"},
			map[string]string{
				"type": "glfs", "hostname": "host1", "namespace": "ns1",
				"support": "support-2", "name": "cfgname",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseConfigRef(tt.uri)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.fields, got.Fields())
		})
	}
}

func TestParseConfigRef_Types(t *testing.T) {
	tests := []struct {
		uri  string
		want Protocol
	}{
		{"config://", ProtocolConfig},
		{"file://a.yml", ProtocolFile},
		{"branch://develop", ProtocolBranch},
		{"http://x", ProtocolHTTP},
		{"https://x", ProtocolHTTP},
		{"glfs://a/b", ProtocolGLFS},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseConfigRef(tt.uri)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Type())
		})
	}
}

func TestParseConfigRef_Malformed(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"glfs one segment", "glfs://a"},
		{"glfs five segments", "glfs://a/b/c/d/e"},
		{"glfs empty", "glfs://"},
		{"glfs empty segment", "glfs://a//b"},
		{"glfs trailing slash", "glfs://a/b/"},
		{"missing separator", "branch:develop"},
		{"bare path", "/etc/repo.yml"},
		{"empty file path", "file://"},
		{"empty branch", "branch://"},
		{"empty url", "https://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfigRef(tt.uri)
			require.Error(t, err)

			var me *MalformedURIError
			require.True(t, errors.As(err, &me), "got %T", err)
			require.Equal(t, tt.uri, me.URI)
		})
	}
}

func TestParseConfigRef_UnsupportedProtocol(t *testing.T) {
	tests := []struct {
		uri      string
		protocol string
	}{
		{"ftp://example.com/cfg.yml", "ftp"},
		{"s3://bucket/key", "s3"},
		{"HTTPS://example.com", "HTTPS"},
		{"feature://x", "feature"},
		{"://x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			_, err := ParseConfigRef(tt.uri)

			var ue *UnsupportedProtocolError
			require.True(t, errors.As(err, &ue), "got %T", err)
			require.Equal(t, tt.protocol, ue.Protocol)
			require.Equal(t, tt.uri, ue.URI)
		})
	}
}

func TestConfigRef_StringRoundTrip(t *testing.T) {
	uris := []string{
		"config://",
		"file:///etc/repo.yml",
		"file://relative/path.yml",
		"branch://release/1.0",
		"https://example.com/cfg.yml",
		"http://example.com/cfg.yml",
		"glfs://ns1/cfgname",
		"glfs://host1/ns1/cfgname",
		"glfs://host1/ns1/support-2/cfgname",
	}
	for _, uri := range uris {
		t.Run(uri, func(t *testing.T) {
			ref, err := ParseConfigRef(uri)
			require.NoError(t, err)
			require.Equal(t, uri, ref.String())

			again, err := ParseConfigRef(ref.String())
			require.NoError(t, err)
			require.Equal(t, ref, again)
		})
	}
}

func TestProtocol_String(t *testing.T) {
	require.Equal(t, "config", ProtocolConfig.String())
	require.Equal(t, "file", ProtocolFile.String())
	require.Equal(t, "branch", ProtocolBranch.String())
	require.Equal(t, "http", ProtocolHTTP.String())
	require.Equal(t, "glfs", ProtocolGLFS.String())
	require.Equal(t, "unknown", Protocol(99).String())
}
