package config

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	cfg := sampleConfig()

	sub, ok := cfg.FindSubmodule("api")
	require.True(t, ok)
	require.Equal(t, "services/api", sub.Path)

	f, ok := cfg.FindFeature("login")
	require.True(t, ok)
	require.Equal(t, "feature/login", f.BranchName)

	_, ok = cfg.FindRelease("1.3")
	require.True(t, ok)

	_, ok = cfg.FindHotfix("1.1.5")
	require.False(t, ok, "hotfix lives on a support line")

	s, ok := cfg.FindSupport("1.x")
	require.True(t, ok)
	require.Equal(t, "support/1.x/master", s.MasterBranchName)

	_, ok = cfg.FindSubmodule("missing")
	require.False(t, ok)
}

func TestLookup(t *testing.T) {
	cfg := sampleConfig()
	cfg.Features = append(cfg.Features, Feature{Element: Element{Name: "ghost", Shadow: true}})

	tests := []struct {
		name    string
		ref     reference.ElementRef
		wantErr bool
		branch  string
		line    string
	}{
		{"root feature", reference.ElementRef{Kind: reference.KindFeature, Qualifier: "login"}, false, "feature/login", ""},
		{"root release", reference.ElementRef{Kind: reference.KindRelease, Qualifier: "1.3"}, false, "release/1.3", ""},
		{"support hotfix", reference.ElementRef{Kind: reference.KindHotfix, Qualifier: "1.1.5"}, false, "hotfix/1.1.5", "1.x"},
		{"shadow is skipped", reference.ElementRef{Kind: reference.KindFeature, Qualifier: "ghost"}, true, "", ""},
		{"wrong kind", reference.ElementRef{Kind: reference.KindRelease, Qualifier: "login"}, true, "", ""},
		{"missing", reference.ElementRef{Kind: reference.KindHotfix, Qualifier: "nope"}, true, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := cfg.Lookup(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.ref.Kind, m.Kind)
			require.Equal(t, tt.branch, m.Element.BranchName)
			require.Equal(t, tt.line, m.Line)
		})
	}
}

func TestLookup_Intermediate(t *testing.T) {
	cfg := &Config{
		Identifier: "x",
		Releases: []Release{
			{Element: Element{Name: "1.0", BranchName: "release/1.0"}},
			{Element: Element{Name: "2.0", BranchName: "release/2.0"}, Intermediate: true},
		},
		Supports: []Support{{
			Name:     "1.x",
			Hotfixes: []Hotfix{{Element: Element{Name: "1.0.1", BranchName: "hotfix/1.0.1"}, Intermediate: true}},
		}},
		Features: []Feature{{Element: Element{Name: "f", BranchName: "feature/f"}}},
	}

	tests := []struct {
		ref  reference.ElementRef
		want bool
	}{
		{reference.ElementRef{Kind: reference.KindRelease, Qualifier: "1.0"}, false},
		{reference.ElementRef{Kind: reference.KindRelease, Qualifier: "2.0"}, true},
		{reference.ElementRef{Kind: reference.KindHotfix, Qualifier: "1.0.1"}, true},
		{reference.ElementRef{Kind: reference.KindFeature, Qualifier: "f"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.ref.String(), func(t *testing.T) {
			m, err := cfg.Lookup(tt.ref)
			require.NoError(t, err)
			require.Equal(t, tt.want, m.Intermediate)
		})
	}
}

func TestLookup_Support(t *testing.T) {
	cfg := sampleConfig()

	m, err := cfg.Lookup(reference.ElementRef{Kind: reference.KindSupport, Qualifier: "1.x"})
	require.NoError(t, err)
	require.Nil(t, m.Element)
	require.Equal(t, "support/1.x/develop", m.Support.DevelopBranchName)

	_, err = cfg.Lookup(reference.ElementRef{Kind: reference.KindSupport, Qualifier: "2.x"})
	require.ErrorContains(t, err, `support "2.x" not found`)
}

func TestLookup_PrefersVisibleOverEarlierShadow(t *testing.T) {
	cfg := &Config{
		Identifier: "x",
		Features: []Feature{
			{Element: Element{Name: "f", BranchName: "shadowed", Shadow: true}},
			{Element: Element{Name: "f", BranchName: "real"}},
		},
	}
	m, err := cfg.Lookup(reference.ElementRef{Kind: reference.KindFeature, Qualifier: "f"})
	require.NoError(t, err)
	require.Equal(t, "real", m.Element.BranchName)
}
