package filterexpr

import (
	"fmt"
	"strings"
)

// ParseOrder validates an order_by string such as "name asc, created_at desc"
// and returns the matching SQL ORDER BY expression list. Only whitelisted
// keys are accepted, so the result is safe to splice into a query.
func ParseOrder(raw string, schema OrderSchema) (string, error) {
	type key struct {
		column string
		desc   bool
	}
	var keys []key
	seen := map[string]bool{}

	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > 2 {
			return "", fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}
		column, ok := schema.Columns[parts[0]]
		if !ok {
			return "", fmt.Errorf("field %q cannot be used for ordering", parts[0])
		}
		if seen[parts[0]] {
			return "", fmt.Errorf("duplicate order key %q", parts[0])
		}
		seen[parts[0]] = true

		desc := false
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return "", fmt.Errorf("invalid direction %q for field %q", parts[1], parts[0])
			}
		}
		keys = append(keys, key{column: column, desc: desc})
	}

	if len(keys) == 0 && schema.Default != "" {
		seen[schema.Default] = true
		keys = append(keys, key{column: schema.Columns[schema.Default], desc: schema.DefaultDesc})
	}
	if schema.Tiebreak != "" && !seen[schema.Tiebreak] {
		keys = append(keys, key{column: schema.Columns[schema.Tiebreak]})
	}

	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		dir := "ASC"
		if k.desc {
			dir = "DESC"
		}
		clauses = append(clauses, k.column+" "+dir)
	}
	return strings.Join(clauses, ", "), nil
}
