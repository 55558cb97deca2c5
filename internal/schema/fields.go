// Package schema validates raw configuration documents against a registry of
// versioned document shapes and adapts the matched vintage onto the single
// config.Config model.
//
// Shapes are additive: each version keeps every field of the versions before
// it and introduces new, optional fields. A document is matched against the
// newest shape first; fields a shape does not know are tolerated and ignored.
package schema

// Kind is the JSON type a field must have.
type Kind int

const (
	String Kind = iota
	Bool
	// Strings is a list of strings.
	Strings
	// Object is a nested object described by Field.Fields.
	Object
	// List is a list of objects described by Field.Fields.
	List
	// Map is a free-form object with values of any type.
	Map
	// Dependencies is a list whose items are strings or string to string maps.
	Dependencies
	// Document is a nested configuration matched against the registry on its
	// own.
	Document
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "boolean"
	case Strings:
		return "list of strings"
	case Object, Map, Document:
		return "object"
	case List:
		return "list of objects"
	case Dependencies:
		return "list of strings or maps"
	default:
		return "unknown"
	}
}

// Field describes one field of a document shape.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Since is the index of the version that introduced the field.
	Since  int
	Fields []Field
}

// Version indexes, oldest first.
const (
	v00 = iota
	v01
	v02
	v03
	v04
)

var versionNames = []string{"v0.0", "v0.1", "v0.2", "v0.3", "v0.4"}

var taggingFields = []Field{
	{Name: "name", Kind: String, Required: true},
	{Name: "annotation", Kind: String},
}

var elementFields = []Field{
	{Name: "name", Kind: String, Required: true},
	{Name: "branchName", Kind: String, Required: true},
	{Name: "sourceSha", Kind: String},
	{Name: "version", Kind: String},
	{Name: "tags", Kind: List, Since: v02, Fields: taggingFields},
	{Name: "upstream", Kind: String, Since: v04},
	{Name: "shadow", Kind: Bool, Since: v04},
}

var stagedElementFields = withFields(elementFields,
	Field{Name: "intermediate", Kind: Bool, Since: v04},
)

var lineageFields = []Field{
	{Name: "features", Kind: List, Fields: elementFields},
	{Name: "releases", Kind: List, Fields: stagedElementFields},
	{Name: "hotfixes", Kind: List, Fields: stagedElementFields},
}

var supportFields = withFields([]Field{
	{Name: "name", Kind: String, Required: true},
	{Name: "masterBranchName", Kind: String, Required: true},
	{Name: "developBranchName", Kind: String, Required: true},
	{Name: "sourceSha", Kind: String},
	{Name: "version", Kind: String},
	{Name: "developVersion", Kind: String, Since: v01},
	{Name: "masterVersion", Kind: String, Since: v01},
	{Name: "upstream", Kind: String, Since: v04},
}, lineageFields...)

var submoduleFields = []Field{
	{Name: "name", Kind: String, Required: true},
	{Name: "path", Kind: String, Required: true},
	{Name: "config", Kind: Document},
	{Name: "tags", Kind: Strings, Since: v02},
	{Name: "labels", Kind: Map, Since: v02},
	{Name: "url", Kind: String, Since: v03},
	{Name: "annotations", Kind: Map, Since: v03},
	{Name: "shadow", Kind: Bool, Since: v04},
}

var kindTemplateFields = []Field{
	{Name: "message", Kind: String},
	{Name: "tag", Kind: String},
	{Name: "annotation", Kind: String},
}

var templatesFields = []Field{
	{Name: "feature", Kind: Object, Fields: kindTemplateFields},
	{Name: "release", Kind: Object, Fields: kindTemplateFields},
	{Name: "hotfix", Kind: Object, Fields: kindTemplateFields},
	{Name: "support", Kind: Object, Fields: kindTemplateFields},
}

// configFields is the root table. Order is the order fields are checked in,
// and so decides which offending field a ValidationError names.
var configFields = withFields(withFields([]Field{
	{Name: "identifier", Kind: String, Required: true},
	{Name: "apiVersion", Kind: String},
	{Name: "version", Kind: String},
	{Name: "upstreams", Kind: List, Fields: []Field{
		{Name: "name", Kind: String, Required: true},
		{Name: "url", Kind: String, Required: true},
	}},
	{Name: "submodules", Kind: List, Fields: submoduleFields},
}, lineageFields...),
	Field{Name: "supports", Kind: List, Fields: supportFields},
	Field{Name: "included", Kind: Strings},
	Field{Name: "excluded", Kind: Strings},
	Field{Name: "templates", Kind: Object, Fields: templatesFields},
	Field{Name: "developVersion", Kind: String, Since: v01},
	Field{Name: "masterVersion", Kind: String, Since: v01},
	Field{Name: "tags", Kind: Strings, Since: v02},
	Field{Name: "labels", Kind: Map, Since: v02},
	Field{Name: "integrations", Kind: List, Since: v03, Fields: []Field{
		{Name: "plugin", Kind: String, Required: true},
		{Name: "options", Kind: Map},
	}},
	Field{Name: "annotations", Kind: Map, Since: v03},
	Field{Name: "dependencies", Kind: Dependencies, Since: v03},
	Field{Name: "commitTemplates", Kind: List, Since: v03, Fields: []Field{
		{Name: "name", Kind: String, Required: true},
		{Name: "message", Kind: String, Required: true},
	}},
	Field{Name: "tagTemplates", Kind: List, Since: v03, Fields: []Field{
		{Name: "name", Kind: String, Required: true},
		{Name: "tag", Kind: String, Required: true},
		{Name: "annotation", Kind: String},
	}},
	Field{Name: "managed", Kind: Bool, Since: v04},
	Field{Name: "masterBranchName", Kind: String, Since: v04},
	Field{Name: "developBranchName", Kind: String, Since: v04},
)

func withFields(base []Field, extra ...Field) []Field {
	out := make([]Field, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
