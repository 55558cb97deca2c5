package config

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }

// StringPtr returns a pointer to s. Convenience for building trees in code.
func StringPtr(s string) *string { return stringPtr(s) }

// BoolPtr returns a pointer to b. Convenience for building trees in code.
func BoolPtr(b bool) *bool { return boolPtr(b) }

func derefString(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

func derefBool(p *bool, fallback bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}
