package reference

// ElementRef names a feature, release, hotfix or support line. The qualifier
// is opaque and returned exactly as written.
type ElementRef struct {
	Kind      ElementKind
	Qualifier string
}

// String re-renders the reference as a URI.
func (r ElementRef) String() string {
	return r.Kind.String() + separator + r.Qualifier
}

// Fields returns the descriptor as flat key/value pairs.
func (r ElementRef) Fields() map[string]string {
	return map[string]string{"type": r.Kind.String(), "qualifier": r.Qualifier}
}

// ParseElementRef parses an Element Reference of the form type://qualifier.
func ParseElementRef(uri string) (ElementRef, error) {
	scheme, rest, ok := splitURI(uri)
	if !ok {
		return ElementRef{}, &MalformedURIError{URI: uri, Reason: "missing \"://\" separator"}
	}
	kind, ok := ParseElementKind(scheme)
	if !ok {
		return ElementRef{}, &UnsupportedProtocolError{URI: uri, Protocol: scheme}
	}
	return ElementRef{Kind: kind, Qualifier: rest}, nil
}

// Parse parses either reference family. Exactly one of the returned values is
// set on success.
func Parse(uri string) (ConfigRef, *ElementRef, error) {
	scheme, _, ok := splitURI(uri)
	if ok {
		if _, isElement := ParseElementKind(scheme); isElement {
			ref, err := ParseElementRef(uri)
			if err != nil {
				return nil, nil, err
			}
			return nil, &ref, nil
		}
	}
	ref, err := ParseConfigRef(uri)
	if err != nil {
		return nil, nil, err
	}
	return ref, nil, nil
}
