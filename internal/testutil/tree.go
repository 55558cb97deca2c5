package testutil

import (
	"fmt"

	"pgregory.net/rapid"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
)

// TreeOptions bounds the trees drawn by DrawTree.
type TreeOptions struct {
	// Depth is how many levels of nested submodule configs may be drawn.
	Depth int
	// Shadow allows shadow submodules and elements.
	Shadow bool
}

var (
	nameGen    = rapid.StringMatching(`[a-z][a-z0-9-]{0,8}`)
	versionGen = rapid.StringMatching(`v?[0-9]{1,2}\.[0-9]{1,2}\.[0-9]{1,2}`)
	shaGen     = rapid.StringMatching(`[0-9a-f]{7}`)
	textGen    = rapid.StringMatching(`[a-zA-Z0-9 {}.:#-]{0,16}`)
)

// DrawTree draws a random configuration tree for property tests.
func DrawTree(t *rapid.T, opts TreeOptions) *config.Config {
	return drawConfig(t, opts, opts.Depth, "root")
}

func drawConfig(t *rapid.T, opts TreeOptions, depth int, label string) *config.Config {
	cfg := &config.Config{
		Identifier:        nameGen.Draw(t, label+".identifier"),
		APIVersion:        maybe(t, rapid.SampledFrom([]string{"v0.0", "v0.2", "v0.4"}), label+".apiVersion"),
		Managed:           maybe(t, rapid.Bool(), label+".managed"),
		DevelopVersion:    maybe(t, versionGen, label+".developVersion"),
		MasterVersion:     maybe(t, versionGen, label+".masterVersion"),
		Version:           maybe(t, versionGen, label+".version"),
		Included:          rapid.SliceOfN(nameGen, 0, 2).Draw(t, label+".included"),
		Excluded:          rapid.SliceOfN(nameGen, 0, 2).Draw(t, label+".excluded"),
		Tags:              rapid.SliceOfN(nameGen, 0, 3).Draw(t, label+".tags"),
		Labels:            drawLabels(t, label+".labels"),
		Annotations:       drawLabels(t, label+".annotations"),
		MasterBranchName:  maybe(t, nameGen, label+".masterBranchName"),
		DevelopBranchName: maybe(t, nameGen, label+".developBranchName"),
	}

	for i := range rapid.IntRange(0, 2).Draw(t, label+".upstreams") {
		cfg.Upstreams = append(cfg.Upstreams, config.Upstream{
			Name: fmt.Sprintf("remote%d", i),
			URL:  "git@example.com:" + nameGen.Draw(t, label+".upstream") + ".git",
		})
	}

	for i := range rapid.IntRange(0, 2).Draw(t, label+".submodules") {
		sub := config.Submodule{
			Name:        fmt.Sprintf("sub%d", i),
			Path:        "modules/" + nameGen.Draw(t, label+".path"),
			URL:         maybe(t, nameGen, label+".url"),
			Tags:        rapid.SliceOfN(nameGen, 0, 2).Draw(t, label+".subTags"),
			Labels:      drawLabels(t, label+".subLabels"),
			Annotations: drawLabels(t, label+".subAnnotations"),
			Shadow:      opts.Shadow && rapid.Bool().Draw(t, label+".subShadow"),
		}
		if depth > 0 && rapid.Bool().Draw(t, label+".hasConfig") {
			sub.Config = drawConfig(t, opts, depth-1, fmt.Sprintf("%s.sub%d", label, i))
		}
		cfg.Submodules = append(cfg.Submodules, sub)
	}

	cfg.Features, cfg.Releases, cfg.Hotfixes = drawLineage(t, opts, label)

	for i := range rapid.IntRange(0, 2).Draw(t, label+".supports") {
		name := fmt.Sprintf("%d.x", i)
		sup := config.Support{
			Name:              name,
			MasterBranchName:  "support/" + name + "/master",
			DevelopBranchName: "support/" + name + "/develop",
			SourceSha:         shaGen.Draw(t, label+".supportSha"),
			DevelopVersion:    maybe(t, versionGen, label+".supportDevelop"),
			MasterVersion:     maybe(t, versionGen, label+".supportMaster"),
			Upstream:          maybe(t, rapid.Just("remote0"), label+".supportUpstream"),
		}
		sup.Features, sup.Releases, sup.Hotfixes = drawLineage(t, opts, label+"."+name)
		cfg.Supports = append(cfg.Supports, sup)
	}

	if rapid.Bool().Draw(t, label+".hasTemplates") {
		cfg.Templates = &config.Templates{
			Feature: drawKindTemplate(t, label+".feature"),
			Release: drawKindTemplate(t, label+".release"),
			Hotfix:  drawKindTemplate(t, label+".hotfix"),
			Support: drawKindTemplate(t, label+".support"),
		}
	}
	for i := range rapid.IntRange(0, 2).Draw(t, label+".commitTemplates") {
		cfg.CommitTemplates = append(cfg.CommitTemplates, config.MessageTemplate{
			Name:    fmt.Sprintf("commit%d", i),
			Message: textGen.Draw(t, label+".message"),
		})
	}
	for i := range rapid.IntRange(0, 2).Draw(t, label+".tagTemplates") {
		cfg.TagTemplates = append(cfg.TagTemplates, config.TagTemplate{
			Name:       fmt.Sprintf("tag%d", i),
			Tag:        textGen.Draw(t, label+".tag"),
			Annotation: maybe(t, textGen, label+".annotation"),
		})
	}
	for i := range rapid.IntRange(0, 2).Draw(t, label+".integrations") {
		cfg.Integrations = append(cfg.Integrations, config.Integration{
			Plugin:  fmt.Sprintf("plugin%d", i),
			Options: drawLabels(t, label+".options"),
		})
	}
	for range rapid.IntRange(0, 2).Draw(t, label+".dependencies") {
		if rapid.Bool().Draw(t, label+".depIsMap") {
			cfg.Dependencies = append(cfg.Dependencies, config.Dependency{
				Versions: map[string]string{nameGen.Draw(t, label+".depName"): versionGen.Draw(t, label+".depVersion")},
			})
			continue
		}
		cfg.Dependencies = append(cfg.Dependencies, config.Dependency{Spec: nameGen.Draw(t, label+".dep")})
	}
	return cfg
}

func drawLineage(t *rapid.T, opts TreeOptions, label string) ([]config.Feature, []config.Release, []config.Hotfix) {
	var (
		features []config.Feature
		releases []config.Release
		hotfixes []config.Hotfix
	)
	for i := range rapid.IntRange(0, 2).Draw(t, label+".features") {
		features = append(features, config.Feature{Element: drawElement(t, opts, "feature", i, label)})
	}
	for i := range rapid.IntRange(0, 2).Draw(t, label+".releases") {
		releases = append(releases, config.Release{
			Element:      drawElement(t, opts, "release", i, label),
			Intermediate: rapid.Bool().Draw(t, label+".releaseIntermediate"),
		})
	}
	for i := range rapid.IntRange(0, 2).Draw(t, label+".hotfixes") {
		hotfixes = append(hotfixes, config.Hotfix{
			Element:      drawElement(t, opts, "hotfix", i, label),
			Intermediate: rapid.Bool().Draw(t, label+".hotfixIntermediate"),
		})
	}
	return features, releases, hotfixes
}

func drawElement(t *rapid.T, opts TreeOptions, kind string, i int, label string) config.Element {
	name := fmt.Sprintf("%s%d", kind, i)
	e := config.Element{
		Name:       name,
		BranchName: kind + "/" + nameGen.Draw(t, label+"."+name+".branch"),
		SourceSha:  shaGen.Draw(t, label+"."+name+".sha"),
		Version:    maybe(t, versionGen, label+"."+name+".version"),
		Upstream:   maybe(t, rapid.Just("remote0"), label+"."+name+".upstream"),
		Shadow:     opts.Shadow && rapid.Bool().Draw(t, label+"."+name+".shadow"),
	}
	for range rapid.IntRange(0, 2).Draw(t, label+"."+name+".tags") {
		e.Tags = append(e.Tags, config.Tagging{
			Name:       nameGen.Draw(t, label+"."+name+".tagName"),
			Annotation: maybe(t, textGen, label+"."+name+".tagAnnotation"),
		})
	}
	return e
}

func drawKindTemplate(t *rapid.T, label string) *config.KindTemplate {
	if !rapid.Bool().Draw(t, label+".present") {
		return nil
	}
	return &config.KindTemplate{
		Message:    maybe(t, textGen, label+".message"),
		Tag:        maybe(t, textGen, label+".tag"),
		Annotation: maybe(t, textGen, label+".annotation"),
	}
}

func drawLabels(t *rapid.T, label string) config.Labels {
	n := rapid.IntRange(0, 3).Draw(t, label+".size")
	if n == 0 {
		return nil
	}
	out := make(config.Labels, n)
	for i := range n {
		key := fmt.Sprintf("key%d", i)
		switch rapid.IntRange(0, 3).Draw(t, label+".kind") {
		case 0:
			out[key] = textGen.Draw(t, label+".string")
		case 1:
			out[key] = rapid.SliceOfN(nameGen, 0, 3).Draw(t, label+".strings")
		case 2:
			out[key] = map[string]any{"enabled": rapid.Bool().Draw(t, label+".bool")}
		default:
			out[key] = []any{nameGen.Draw(t, label+".item"), rapid.IntRange(0, 9).Draw(t, label+".int")}
		}
	}
	return out
}

func maybe[V any](t *rapid.T, gen *rapid.Generator[V], label string) *V {
	if !rapid.Bool().Draw(t, label+".present") {
		return nil
	}
	v := gen.Draw(t, label)
	return &v
}

// StripShadow returns a copy of cfg with every shadow entry removed.
func StripShadow(cfg *config.Config) *config.Config {
	out := cfg.Clone()
	_ = config.Walk(out, func(_ []string, node *config.Config) error {
		node.Submodules = node.VisibleSubmodules()
		node.Features = node.VisibleFeatures()
		node.Releases = node.VisibleReleases()
		node.Hotfixes = node.VisibleHotfixes()
		for i := range node.Supports {
			s := &node.Supports[i]
			s.Features = s.VisibleFeatures()
			s.Releases = s.VisibleReleases()
			s.Hotfixes = s.VisibleHotfixes()
		}
		return nil
	})
	return out
}
