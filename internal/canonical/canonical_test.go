package canonical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/hash"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/schema"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/testutil"
)

func TestToCanonical_Minimal(t *testing.T) {
	cfg := &config.Config{
		Identifier: "x",
		Managed:    config.BoolPtr(true),
		Tags:       []string{},
		Templates:  &config.Templates{Feature: &config.KindTemplate{}},
		Releases: []config.Release{{
			Element: config.Element{Name: "r", BranchName: "release/r", Tags: []config.Tagging{}},
		}},
		Labels: config.Labels{},
	}

	require.Equal(t, map[string]any{
		"identifier": "x",
		"releases": []any{
			map[string]any{"name": "r", "branchName": "release/r"},
		},
	}, ToCanonical(cfg, false))
}

func TestToCanonical_KeepsManagedFalse(t *testing.T) {
	doc := ToCanonical(&config.Config{Identifier: "x", Managed: config.BoolPtr(false)}, false)
	require.Equal(t, false, doc["managed"])
}

func TestToCanonical_Full(t *testing.T) {
	cfg := &config.Config{
		Identifier:   "platform",
		APIVersion:   config.StringPtr("v0.3"),
		Upstreams:    []config.Upstream{{Name: "origin", URL: "u"}},
		Dependencies: []config.Dependency{{Spec: "lib"}, {Versions: map[string]string{"sdk": "1.0.0"}}},
		Hotfixes: []config.Hotfix{{
			Element:      config.Element{Name: "h", BranchName: "hotfix/h", SourceSha: "abc", Upstream: config.StringPtr("origin")},
			Intermediate: true,
		}},
		Supports: []config.Support{{Name: "1.x", MasterBranchName: "m", DevelopBranchName: "d"}},
		Integrations: []config.Integration{
			{Plugin: "slack", Options: map[string]any{"channel": "#x"}},
			{Plugin: "bare"},
		},
		TagTemplates: []config.TagTemplate{{Name: "t", Tag: "v{{version}}"}},
	}

	doc := ToCanonical(cfg, false)
	require.Equal(t, "v0.3", doc["apiVersion"])
	require.Equal(t, []any{map[string]any{"name": "origin", "url": "u"}}, doc["upstreams"])
	require.Equal(t, []any{"lib", map[string]any{"sdk": "1.0.0"}}, doc["dependencies"])
	require.Equal(t, []any{map[string]any{
		"name": "h", "branchName": "hotfix/h", "sourceSha": "abc", "upstream": "origin", "intermediate": true,
	}}, doc["hotfixes"])
	require.Equal(t, []any{map[string]any{"name": "1.x", "masterBranchName": "m", "developBranchName": "d"}}, doc["supports"])
	require.Equal(t, []any{
		map[string]any{"plugin": "slack", "options": map[string]any{"channel": "#x"}},
		map[string]any{"plugin": "bare"},
	}, doc["integrations"])
	require.Equal(t, []any{map[string]any{"name": "t", "tag": "v{{version}}"}}, doc["tagTemplates"])
}

func TestToCanonical_DropsShadow(t *testing.T) {
	cfg := &config.Config{
		Identifier: "x",
		Submodules: []config.Submodule{
			{Name: "kept", Path: "kept"},
			{Name: "scratch", Path: "scratch", Shadow: true, Config: &config.Config{Identifier: "scratch"}},
		},
		Features: []config.Feature{{Element: config.Element{Name: "f", BranchName: "feature/f", Shadow: true}}},
		Supports: []config.Support{{
			Name: "1.x", MasterBranchName: "m", DevelopBranchName: "d",
			Hotfixes: []config.Hotfix{{Element: config.Element{Name: "h", BranchName: "h", Shadow: true}}},
		}},
	}

	doc := ToCanonical(cfg, false)
	require.Equal(t, []any{map[string]any{"name": "kept", "path": "kept"}}, doc["submodules"])
	require.NotContains(t, doc, "features")
	require.NotContains(t, doc["supports"].([]any)[0], "hotfixes")
}

func TestToCanonical_Stamp(t *testing.T) {
	cfg := &config.Config{
		Identifier: "x",
		APIVersion: config.StringPtr("v0.1"),
		Submodules: []config.Submodule{{Name: "s", Path: "s", Config: &config.Config{Identifier: "s"}}},
	}

	stamped := ToCanonical(cfg, true)
	require.Equal(t, schema.Default.Latest(), stamped["apiVersion"])
	nested := stamped["submodules"].([]any)[0].(map[string]any)["config"].(map[string]any)
	require.Equal(t, schema.Default.Latest(), nested["apiVersion"])

	plain := ToCanonical(cfg, false)
	require.Equal(t, "v0.1", plain["apiVersion"])
	nested = plain["submodules"].([]any)[0].(map[string]any)["config"].(map[string]any)
	require.NotContains(t, nested, "apiVersion")
}

func TestToCanonical_DoesNotAlias(t *testing.T) {
	cfg := &config.Config{Identifier: "x", Labels: config.Labels{"k": map[string]any{"v": 1}}}
	doc := ToCanonical(cfg, false)
	doc["labels"].(map[string]any)["k"].(map[string]any)["v"] = 2
	require.Equal(t, 1, cfg.Labels["k"].(map[string]any)["v"])
}

func TestMarshal(t *testing.T) {
	cfg := &config.Config{
		Identifier:     "x",
		DevelopVersion: config.StringPtr("1.0.0"),
		Features:       []config.Feature{{Element: config.Element{Name: "f", BranchName: "feature/f"}}},
		Labels:         config.Labels{"b": "2", "a": "1"},
	}

	data, err := Marshal(cfg, FormatYAML, true)
	require.NoError(t, err)
	require.Equal(t, `identifier: x
apiVersion: v0.4
developVersion: 1.0.0
features:
  - name: f
    branchName: feature/f
labels:
  a: "1"
  b: "2"
`, string(data))

	data, err = Marshal(cfg, FormatJSON, false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "{\n  \"developVersion\": \"1.0.0\""))

	_, err = Marshal(cfg, "toml", false)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)
	f, err = ParseFormat("json")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)
	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testutil.DrawTree(t, testutil.TreeOptions{Depth: 2, Shadow: true})
		want, err := hash.Compute(cfg)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		doc := ToCanonical(cfg, false)
		rebuilt, err := schema.Default.Validate(doc)
		if err != nil {
			t.Fatalf("canonical document does not validate: %v", err)
		}
		got, err := hash.Compute(rebuilt)
		if err != nil {
			t.Fatalf("hash rebuilt: %v", err)
		}
		if got != want {
			t.Fatalf("round trip changed the digest: %s != %s", got, want)
		}

		if rebuilt.HasShadow() {
			t.Fatalf("canonical document kept shadow entries")
		}
	})
}

func TestRoundTrip_Serialized(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testutil.DrawTree(t, testutil.TreeOptions{Depth: 1})
		want, err := hash.Compute(cfg)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		for _, format := range []Format{FormatYAML, FormatJSON} {
			data, err := Marshal(cfg, format, false)
			if err != nil {
				t.Fatalf("marshal %s: %v", format, err)
			}
			rebuilt, err := schema.LoadFromBytes(data)
			if err != nil {
				t.Fatalf("load %s: %v\n%s", format, err, data)
			}
			got, err := hash.Compute(rebuilt)
			if err != nil {
				t.Fatalf("hash rebuilt: %v", err)
			}
			if got != want {
				t.Fatalf("%s round trip changed the digest:\n%s", format, data)
			}
		}
	})
}

func TestShadowExclusion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testutil.DrawTree(t, testutil.TreeOptions{Depth: 1, Shadow: true})
		stripped := testutil.StripShadow(cfg)

		a, err := Marshal(cfg, FormatJSON, false)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		b, err := Marshal(stripped, FormatJSON, false)
		if err != nil {
			t.Fatalf("marshal stripped: %v", err)
		}
		if string(a) != string(b) {
			t.Fatalf("shadow entries changed canonical output")
		}
	})
}
