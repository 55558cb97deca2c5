package semver

import "gopkg.in/yaml.v3"

// UnmarshalYAML implements yaml.Unmarshaler for Branch.
func (b *Branch) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseBranch(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Branch.
func (b Branch) MarshalYAML() (any, error) {
	return b.String(), nil
}
