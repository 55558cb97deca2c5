package config

// MessageTemplate is a named commit message template.
type MessageTemplate struct {
	Name    string
	Message string
}

// TagTemplate is a named tag template with an optional annotation.
type TagTemplate struct {
	Name       string
	Tag        string
	Annotation *string
}

// KindTemplate holds the message and tag templates for one branch kind.
type KindTemplate struct {
	Message    *string
	Tag        *string
	Annotation *string
}

// IsEmpty returns true when no template is declared.
func (k *KindTemplate) IsEmpty() bool {
	return k == nil || (k.Message == nil && k.Tag == nil && k.Annotation == nil)
}

// Templates holds per-kind message and tag templates.
type Templates struct {
	Feature *KindTemplate
	Release *KindTemplate
	Hotfix  *KindTemplate
	Support *KindTemplate
}

// IsEmpty returns true when no kind declares a template.
func (t *Templates) IsEmpty() bool {
	return t == nil || (t.Feature.IsEmpty() && t.Release.IsEmpty() && t.Hotfix.IsEmpty() && t.Support.IsEmpty())
}

// TemplateKinds lists the template kinds in document and hash order.
var TemplateKinds = []string{"feature", "release", "hotfix", "support"}

// Kind returns the template for the named kind, or nil.
func (t *Templates) Kind(kind string) *KindTemplate {
	if t == nil {
		return nil
	}
	switch kind {
	case "feature":
		return t.Feature
	case "release":
		return t.Release
	case "hotfix":
		return t.Hotfix
	case "support":
		return t.Support
	default:
		return nil
	}
}
