package repository

import "github.com/eslsoft/keymantra/pkg/filterexpr"

var listCoursesSchema = filterexpr.Schema{
	Filter: map[string]filterexpr.FilterField{
		"keyword": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Keyword"},
		},
		"name": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Name",
				filterexpr.OpSW: "NamePrefix",
				filterexpr.OpIN: "Names",
			},
		},
		"created_at": {
			Kind: filterexpr.KindTimestamp,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "CreatedAfter",
				filterexpr.OpLTE: "CreatedBefore",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		Columns: map[string]string{
			"name":       "c.name",
			"created_at": "c.created_at",
			"updated_at": "c.updated_at",
			"id":         "c.id",
		},
		Default:     "created_at",
		DefaultDesc: true,
		Tiebreak:    "id",
	},
}
