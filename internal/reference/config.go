package reference

import (
	"strconv"
	"strings"
)

// ConfigRef is a parsed Config Reference. The concrete type is one of
// ConfigSource, FileRef, BranchRef, HTTPRef or GLFSRef.
type ConfigRef interface {
	// Type returns the protocol family.
	Type() Protocol
	// String re-renders the reference as a URI.
	String() string
	// Fields returns the descriptor as flat key/value pairs, always including
	// "type". Absent optional parts are left out.
	Fields() map[string]string

	configRef()
}

// ConfigSource refers to the configuration of the current context. Its
// qualifier is ignored.
type ConfigSource struct{}

// FileRef refers to a file on the local filesystem.
type FileRef struct {
	Path string
}

// BranchRef refers to the configuration stored on a git branch.
type BranchRef struct {
	BranchName string
}

// HTTPRef refers to a document served over HTTP(S). URL is everything after
// the "://" separator.
type HTTPRef struct {
	Scheme string
	URL    string
}

// GLFSRef refers to a fragment in the content-addressable store. Hostname and
// Support are empty when not given.
type GLFSRef struct {
	Hostname  string
	Namespace string
	Name      string
	Support   string
}

func (ConfigSource) Type() Protocol { return ProtocolConfig }
func (FileRef) Type() Protocol      { return ProtocolFile }
func (BranchRef) Type() Protocol    { return ProtocolBranch }
func (HTTPRef) Type() Protocol      { return ProtocolHTTP }
func (GLFSRef) Type() Protocol      { return ProtocolGLFS }

func (ConfigSource) configRef() {}
func (FileRef) configRef()      {}
func (BranchRef) configRef()    {}
func (HTTPRef) configRef()      {}
func (GLFSRef) configRef()      {}

func (ConfigSource) String() string { return "config" + separator }
func (r FileRef) String() string    { return "file" + separator + r.Path }
func (r BranchRef) String() string  { return "branch" + separator + r.BranchName }
func (r HTTPRef) String() string    { return r.Scheme + separator + r.URL }

func (r GLFSRef) String() string {
	segments := make([]string, 0, 4)
	if r.Hostname != "" {
		segments = append(segments, r.Hostname)
	}
	segments = append(segments, r.Namespace)
	if r.Support != "" {
		segments = append(segments, r.Support)
	}
	segments = append(segments, r.Name)
	return "glfs" + separator + strings.Join(segments, "/")
}

func (ConfigSource) Fields() map[string]string {
	return map[string]string{"type": "config"}
}

func (r FileRef) Fields() map[string]string {
	return map[string]string{"type": "file", "path": r.Path}
}

func (r BranchRef) Fields() map[string]string {
	return map[string]string{"type": "branch", "branchName": r.BranchName}
}

func (r HTTPRef) Fields() map[string]string {
	return map[string]string{"type": "http", "protocol": r.Scheme, "url": r.URL}
}

func (r GLFSRef) Fields() map[string]string {
	f := map[string]string{"type": "glfs", "namespace": r.Namespace, "name": r.Name}
	if r.Hostname != "" {
		f["hostname"] = r.Hostname
	}
	if r.Support != "" {
		f["support"] = r.Support
	}
	return f
}

// ParseConfigRef parses a Config Reference of the form protocol://qualifier.
//
// An unrecognized protocol yields *UnsupportedProtocolError. A recognized
// protocol with a qualifier of the wrong shape yields *MalformedURIError.
func ParseConfigRef(uri string) (ConfigRef, error) {
	scheme, rest, ok := splitURI(uri)
	if !ok {
		return nil, &MalformedURIError{URI: uri, Reason: "missing \"://\" separator"}
	}

	switch scheme {
	case "config":
		return ConfigSource{}, nil
	case "file":
		if rest == "" {
			return nil, &MalformedURIError{URI: uri, Reason: "empty file path"}
		}
		return FileRef{Path: rest}, nil
	case "branch":
		if rest == "" {
			return nil, &MalformedURIError{URI: uri, Reason: "empty branch name"}
		}
		return BranchRef{BranchName: rest}, nil
	case "http", "https":
		if rest == "" {
			return nil, &MalformedURIError{URI: uri, Reason: "empty url"}
		}
		return HTTPRef{Scheme: scheme, URL: rest}, nil
	case "glfs":
		return parseGLFS(uri, rest)
	default:
		return nil, &UnsupportedProtocolError{URI: uri, Protocol: scheme}
	}
}

// parseGLFS maps 2 to 4 "/"-delimited segments onto a GLFSRef:
//
//	namespace/name
//	hostname/namespace/name
//	hostname/namespace/support/name
//
// The 4-segment form places support between namespace and name; it is not
// read right-aligned with the namespace second to last.
func parseGLFS(uri, qualifier string) (ConfigRef, error) {
	segments := strings.Split(qualifier, "/")
	for _, s := range segments {
		if s == "" {
			return nil, &MalformedURIError{URI: uri, Reason: "empty glfs segment"}
		}
	}

	switch len(segments) {
	case 2:
		return GLFSRef{Namespace: segments[0], Name: segments[1]}, nil
	case 3:
		return GLFSRef{Hostname: segments[0], Namespace: segments[1], Name: segments[2]}, nil
	case 4:
		return GLFSRef{
			Hostname:  segments[0],
			Namespace: segments[1],
			Support:   segments[2],
			Name:      segments[3],
		}, nil
	default:
		return nil, &MalformedURIError{
			URI:    uri,
			Reason: "glfs reference needs 2 to 4 segments, got " + strconv.Itoa(len(segments)),
		}
	}
}
