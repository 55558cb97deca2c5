// Package reference parses the two URI families used to point at
// configuration: Config References, which say where a configuration document
// lives (config, file, branch, http, https, glfs), and Element References,
// which name a feature, release, hotfix or support line.
//
// Both families are closed. Parsing decodes the protocol once into a tagged
// variant so callers switch on concrete types rather than strings. Parsing is
// pure: nothing is fetched and nothing is checked for existence.
package reference

import "strings"

// Protocol identifies the kind of a Config Reference. http and https share
// ProtocolHTTP; the scheme is kept on HTTPRef.
type Protocol int

const (
	ProtocolConfig Protocol = iota
	ProtocolFile
	ProtocolBranch
	ProtocolHTTP
	ProtocolGLFS
)

func (p Protocol) String() string {
	switch p {
	case ProtocolConfig:
		return "config"
	case ProtocolFile:
		return "file"
	case ProtocolBranch:
		return "branch"
	case ProtocolHTTP:
		return "http"
	case ProtocolGLFS:
		return "glfs"
	default:
		return "unknown"
	}
}

// ElementKind identifies the kind of an Element Reference.
type ElementKind int

const (
	KindFeature ElementKind = iota
	KindRelease
	KindHotfix
	KindSupport
)

func (k ElementKind) String() string {
	switch k {
	case KindFeature:
		return "feature"
	case KindRelease:
		return "release"
	case KindHotfix:
		return "hotfix"
	case KindSupport:
		return "support"
	default:
		return "unknown"
	}
}

// ParseElementKind parses an element kind name. Matching is exact.
func ParseElementKind(s string) (ElementKind, bool) {
	switch s {
	case "feature":
		return KindFeature, true
	case "release":
		return KindRelease, true
	case "hotfix":
		return KindHotfix, true
	case "support":
		return KindSupport, true
	default:
		return 0, false
	}
}

const separator = "://"

// splitURI splits "scheme://rest". ok is false when the separator is missing.
func splitURI(uri string) (scheme, rest string, ok bool) {
	idx := strings.Index(uri, separator)
	if idx < 0 {
		return "", "", false
	}
	return uri[:idx], uri[idx+len(separator):], true
}
