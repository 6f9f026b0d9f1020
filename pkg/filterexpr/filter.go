package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Sentinel errors wrapped by Bind so callers can map them to client errors.
var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidOrder  = errors.New("invalid order_by")
)

// Predicate is one comparison of a parsed filter.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Bind parses the filter and order_by of msg. Filter literals are assigned to
// the fields of params named by the schema; the ORDER BY clause is returned.
func Bind[M Msg, P any](msg M, params *P, schema Schema) (string, error) {
	if params == nil {
		return "", errors.New("params must not be nil")
	}
	preds, err := ParseFilter(msg.GetFilter(), schema.Filter)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	dest := reflect.ValueOf(params).Elem()
	if dest.Kind() != reflect.Struct {
		return "", errors.New("params must point to a struct")
	}
	for _, pred := range preds {
		name := schema.Filter[pred.Field].Ops[pred.Op]
		field := dest.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return "", fmt.Errorf("params struct %s has no settable field %q", dest.Type(), name)
		}
		if err := assign(field, pred.Value); err != nil {
			return "", fmt.Errorf("%w: field %q: %w", ErrInvalidFilter, pred.Field, err)
		}
	}

	order, err := ParseOrder(msg.GetOrderBy(), schema.Order)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	return order, nil
}

// ParseFilter validates raw against fields and returns its predicates.
// An empty filter yields no predicates.
func ParseFilter(raw string, fields map[string]FilterField) ([]Predicate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if len(fields) == 0 {
		return nil, errors.New("resource does not support filtering")
	}

	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, f := range fields {
		typ, err := celType(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, typ))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Parse(raw)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("convert ast: %w", err)
	}

	var conjuncts []*exprpb.Expr
	if err := flattenAnd(parsed.GetExpr(), &conjuncts); err != nil {
		return nil, err
	}

	preds := make([]Predicate, 0, len(conjuncts))
	for _, expr := range conjuncts {
		pred, err := parsePredicate(expr)
		if err != nil {
			return nil, err
		}
		f, ok := fields[pred.Field]
		if !ok {
			return nil, fmt.Errorf("field %q is not allowed", pred.Field)
		}
		if _, ok := f.Ops[pred.Op]; !ok {
			return nil, fmt.Errorf("operator %q is not allowed for field %q", pred.Op, pred.Field)
		}
		if err := checkLiteral(f.Kind, pred); err != nil {
			return nil, fmt.Errorf("field %q: %w", pred.Field, err)
		}
		preds = append(preds, pred)
	}
	return preds, nil
}

func celType(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

func flattenAnd(expr *exprpb.Expr, out *[]*exprpb.Expr) error {
	if expr == nil {
		return errors.New("empty expression")
	}
	call := expr.GetCallExpr()
	if call == nil {
		*out = append(*out, expr)
		return nil
	}
	switch call.Function {
	case "_&&_":
		for _, arg := range call.Args {
			if err := flattenAnd(arg, out); err != nil {
				return err
			}
		}
		return nil
	case "_||_", "_?_:_", "!_":
		return fmt.Errorf("operator %q is not supported; only && is allowed", call.Function)
	default:
		*out = append(*out, expr)
		return nil
	}
}

func parsePredicate(expr *exprpb.Expr) (Predicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return Predicate{}, errors.New("expected a comparison")
	}

	var op Op
	var lhs, rhs *exprpb.Expr
	switch call.Function {
	case "_==_", "_>=_", "_<=_":
		if call.Target != nil || len(call.Args) != 2 {
			return Predicate{}, fmt.Errorf("operator %q expects two operands", call.Function)
		}
		op = Op(strings.Trim(call.Function, "_"))
		lhs, rhs = call.Args[0], call.Args[1]
	case "@in":
		if len(call.Args) != 2 {
			return Predicate{}, errors.New("in expects two operands")
		}
		op, lhs, rhs = OpIN, call.Args[0], call.Args[1]
	case "startsWith":
		if call.Target == nil || len(call.Args) != 1 {
			return Predicate{}, errors.New("startsWith must be called on a field")
		}
		op, lhs, rhs = OpSW, call.Target, call.Args[0]
	default:
		return Predicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}

	ident := lhs.GetIdentExpr()
	if ident == nil {
		return Predicate{}, errors.New("left-hand side must be a field name")
	}
	value, err := literal(rhs)
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Field: ident.GetName(), Op: op, Value: value}, nil
}

func literal(expr *exprpb.Expr) (any, error) {
	if c := expr.GetConstExpr(); c != nil {
		switch c.ConstantKind.(type) {
		case *exprpb.Constant_StringValue:
			return c.GetStringValue(), nil
		case *exprpb.Constant_Int64Value:
			return float64(c.GetInt64Value()), nil
		case *exprpb.Constant_Uint64Value:
			return float64(c.GetUint64Value()), nil
		case *exprpb.Constant_DoubleValue:
			return c.GetDoubleValue(), nil
		default:
			return nil, fmt.Errorf("literal type %T is not supported", c.ConstantKind)
		}
	}
	if list := expr.GetListExpr(); list != nil {
		values := make([]string, 0, len(list.GetElements()))
		for _, elem := range list.GetElements() {
			s := elem.GetConstExpr().GetStringValue()
			if s == "" {
				return nil, errors.New("list elements must be non-empty string literals")
			}
			values = append(values, s)
		}
		return values, nil
	}
	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" && len(call.Args) == 1 {
		raw := call.Args[0].GetConstExpr().GetStringValue()
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("timestamp literal %q is not RFC3339", raw)
		}
		return t, nil
	}
	return nil, errors.New("right-hand side must be a literal, list literal, or timestamp() call")
}

func checkLiteral(kind ValueKind, pred Predicate) error {
	ok := false
	switch kind {
	case KindString:
		if pred.Op == OpIN {
			list, isList := pred.Value.([]string)
			ok = isList && len(list) > 0
		} else {
			_, ok = pred.Value.(string)
		}
	case KindNumber:
		_, ok = pred.Value.(float64)
	case KindTimestamp:
		_, ok = pred.Value.(time.Time)
	}
	if !ok {
		return fmt.Errorf("expected %s literal for %s", kind, pred.Op)
	}
	return nil
}

func assign(field reflect.Value, value any) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(field.Type()):
		field.Set(v)
	case v.Kind() == reflect.Float64 && field.CanInt():
		field.SetInt(int64(v.Float()))
	case v.Type().ConvertibleTo(field.Type()):
		field.Set(v.Convert(field.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", value, field.Type())
	}
	return nil
}
