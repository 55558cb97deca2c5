// Package hash computes the content digest of a configuration tree.
//
// The digest is a fold over the tree's fields in a fixed order. The order and
// the token layout are a compatibility contract with digests persisted by
// earlier releases: changing either changes every digest.
package hash

import (
	"encoding/base64"
	"fmt"

	"github.com/opencontainers/go-digest"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
)

// Encoding selects the text form of a digest.
type Encoding string

const (
	// EncodingHex is lowercase hexadecimal.
	EncodingHex Encoding = "hex"
	// EncodingBase64 is standard padded base64.
	EncodingBase64 Encoding = "base64"
	// EncodingDigest is the OCI "algorithm:hex" form, e.g. "sha256:9f86...".
	EncodingDigest Encoding = "digest"
)

// ParseEncoding parses an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(s); e {
	case EncodingHex, EncodingBase64, EncodingDigest:
		return e, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", s)
	}
}

type options struct {
	algorithm digest.Algorithm
	encoding  Encoding
}

// Option configures Compute.
type Option func(*options)

// WithAlgorithm selects the hash algorithm. The default is sha256; sha384 and
// sha512 are also available.
func WithAlgorithm(a digest.Algorithm) Option {
	return func(o *options) { o.algorithm = a }
}

// WithEncoding selects the digest's text encoding. The default is hex.
func WithEncoding(e Encoding) Option {
	return func(o *options) { o.encoding = e }
}

// Compute returns the digest of cfg. Shadow entries are skipped. It fails only
// for an unsupported algorithm or encoding, or a label value that has no JSON
// form. Compute does not modify cfg and is safe for concurrent use.
func Compute(cfg *config.Config, opts ...Option) (string, error) {
	o := options{algorithm: digest.SHA256, encoding: EncodingHex}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.algorithm.Available() {
		return "", fmt.Errorf("unsupported hash algorithm %q", o.algorithm)
	}
	if _, err := ParseEncoding(string(o.encoding)); err != nil {
		return "", err
	}

	h := o.algorithm.Hash()
	f := &folder{w: h}
	f.config(cfg)
	if f.err != nil {
		return "", fmt.Errorf("hashing %q: %w", cfg.Identifier, f.err)
	}

	d := digest.NewDigestFromBytes(o.algorithm, h.Sum(nil))
	switch o.encoding {
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
	case EncodingDigest:
		return d.String(), nil
	default:
		return d.Encoded(), nil
	}
}

// Equal reports whether a and b have the same default digest.
func Equal(a, b *config.Config) (bool, error) {
	ha, err := Compute(a)
	if err != nil {
		return false, err
	}
	hb, err := Compute(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
