package cmdlang

// Value is a parsed option value. The set of implementations is closed:
// String, Number, Bool, StringList and RelationList.
type Value interface {
	optionValue()
}

// String is a free-text option value.
type String string

// Number is a numeric option value.
type Number float64

// Bool is a boolean option value.
type Bool bool

// StringList collects every value of a repeatable option in input order.
type StringList []string

// RelationList collects every occurrence of a relational option.
type RelationList []Relation

// Relation is one key=value record, e.g. "--rel target=Bob,type=rival".
type Relation struct {
	Raw    string            `json:"raw"`
	Fields map[string]string `json:"fields"`
}

func (String) optionValue()       {}
func (Number) optionValue()       {}
func (Bool) optionValue()         {}
func (StringList) optionValue()   {}
func (RelationList) optionValue() {}

// Get returns the field value, or "" when absent.
func (r Relation) Get(key string) string {
	return r.Fields[key]
}
