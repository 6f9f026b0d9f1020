// Package filterexpr turns the filter and order_by strings of list requests
// into typed query parameters. Filters are CEL expressions restricted to
// AND-ed comparisons against whitelisted fields.
package filterexpr

// Msg wraps request DTOs that expose filter and order_by raw inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// FilterField declares the kind of a filterable field and maps each allowed
// operator to the name of the params struct field receiving the literal.
type FilterField struct {
	Kind ValueKind
	Ops  map[Op]string
}

// OrderSchema lists the sortable keys with their SQL column expressions.
type OrderSchema struct {
	Columns     map[string]string
	Default     string
	DefaultDesc bool
	// Tiebreak is always appended unless already present, keeping pages stable.
	Tiebreak string
}

// Schema aggregates filtering and ordering rules for a resource.
type Schema struct {
	Filter map[string]FilterField
	Order  OrderSchema
}
