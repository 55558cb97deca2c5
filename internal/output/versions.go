package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
)

// WriteVersions writes one aligned line per resolved version. Columns are
// config path, support line ("-" for the root lineage), kind, name and version.
func WriteVersions(w io.Writer, entries []config.VersionEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no versions declared")
		return err
	}

	pathWidth, lineWidth, nameWidth := 0, 0, 0
	for _, e := range entries {
		pathWidth = max(pathWidth, len(strings.Join(e.Path, "/")))
		lineWidth = max(lineWidth, len(e.Line))
		nameWidth = max(nameWidth, len(e.Name))
	}

	for _, e := range entries {
		line := e.Line
		if line == "" {
			line = "-"
		}
		_, err := fmt.Fprintf(w, "%-*s  %-*s  %-7s  %-*s  %s\n",
			pathWidth, strings.Join(e.Path, "/"),
			max(lineWidth, 1), line,
			e.Kind,
			nameWidth, e.Name,
			e.Version,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTree writes the submodule tree of cfg, one config per line, indented
// by depth. Shadow submodules are marked.
func WriteTree(w io.Writer, cfg *config.Config) error {
	return writeTree(w, cfg, "", 0)
}

func writeTree(w io.Writer, cfg *config.Config, mount string, depth int) error {
	label := cfg.Identifier
	if mount != "" {
		label += " (" + mount + ")"
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label); err != nil {
		return err
	}
	for _, sub := range cfg.Submodules {
		if sub.Config == nil {
			suffix := ""
			if sub.Shadow {
				suffix = " [shadow]"
			}
			if _, err := fmt.Fprintf(w, "%s%s (%s)%s\n", strings.Repeat("  ", depth+1), sub.Name, sub.Path, suffix); err != nil {
				return err
			}
			continue
		}
		mount := sub.Path
		if sub.Shadow {
			mount += ", shadow"
		}
		if err := writeTree(w, sub.Config, mount, depth+1); err != nil {
			return err
		}
	}
	return nil
}
