package filterexpr

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type listReq struct{ filter, orderBy string }

func (r listReq) GetFilter() string  { return r.filter }
func (r listReq) GetOrderBy() string { return r.orderBy }

type listParams struct {
	Keyword       *string
	NamePrefix    *string
	Names         []string
	MinQuestions  *int64
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

var testSchema = Schema{
	Filter: map[string]FilterField{
		"keyword": {Kind: KindString, Ops: map[Op]string{OpEQ: "Keyword"}},
		"name": {Kind: KindString, Ops: map[Op]string{
			OpSW: "NamePrefix",
			OpIN: "Names",
		}},
		"question_count": {Kind: KindNumber, Ops: map[Op]string{OpGTE: "MinQuestions"}},
		"created_at": {Kind: KindTimestamp, Ops: map[Op]string{
			OpGTE: "CreatedAfter",
			OpLTE: "CreatedBefore",
		}},
	},
	Order: OrderSchema{
		Columns:     map[string]string{"name": "c.name", "created_at": "c.created_at", "id": "c.id"},
		Default:     "created_at",
		DefaultDesc: true,
		Tiebreak:    "id",
	},
}

func TestBindFilterAndOrder(t *testing.T) {
	var p listParams
	req := listReq{
		filter:  "keyword == 'daily' && name.startsWith('Un') && question_count >= 3 && created_at >= timestamp('2025-01-01T00:00:00Z')",
		orderBy: "name desc",
	}
	order, err := Bind(req, &p, testSchema)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if p.Keyword == nil || *p.Keyword != "daily" {
		t.Fatalf("Keyword = %v", p.Keyword)
	}
	if p.NamePrefix == nil || *p.NamePrefix != "Un" {
		t.Fatalf("NamePrefix = %v", p.NamePrefix)
	}
	if p.MinQuestions == nil || *p.MinQuestions != 3 {
		t.Fatalf("MinQuestions = %v", p.MinQuestions)
	}
	if p.CreatedAfter == nil || !p.CreatedAfter.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("CreatedAfter = %v", p.CreatedAfter)
	}
	if p.CreatedBefore != nil {
		t.Fatalf("CreatedBefore should stay nil, got %v", p.CreatedBefore)
	}
	if order != "c.name DESC, c.id ASC" {
		t.Fatalf("order = %q", order)
	}
}

func TestBindInList(t *testing.T) {
	var p listParams
	if _, err := Bind(listReq{filter: "name in ['a', 'b']"}, &p, testSchema); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if len(p.Names) != 2 || p.Names[0] != "a" || p.Names[1] != "b" {
		t.Fatalf("Names = %q", p.Names)
	}
}

func TestBindEmptyUsesDefaultOrder(t *testing.T) {
	var p listParams
	order, err := Bind(listReq{}, &p, testSchema)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if order != "c.created_at DESC, c.id ASC" {
		t.Fatalf("order = %q", order)
	}
}

func TestBindRejects(t *testing.T) {
	cases := []struct {
		name string
		req  listReq
		want string
	}{
		{"unknown field", listReq{filter: "owner == 'x'"}, "not allowed"},
		{"or", listReq{filter: "keyword == 'a' || keyword == 'b'"}, "only &&"},
		{"wrong op", listReq{filter: "keyword.startsWith('a')"}, "not allowed"},
		{"bad order key", listReq{orderBy: "secret"}, "cannot be used"},
		{"bad direction", listReq{orderBy: "name sideways"}, "invalid direction"},
		{"duplicate order", listReq{orderBy: "name, name desc"}, "duplicate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p listParams
			_, err := Bind(tc.req, &p, testSchema)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestParseOrderKeepsExplicitTiebreak(t *testing.T) {
	order, err := ParseOrder("id desc", testSchema.Order)
	if err != nil {
		t.Fatalf("ParseOrder: %v", err)
	}
	if order != "c.id DESC" {
		t.Fatalf("order = %q", order)
	}
}

func TestBindWrapsSentinels(t *testing.T) {
	var p listParams
	if _, err := Bind(listReq{filter: "keyword =="}, &p, testSchema); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("bad filter: got %v", err)
	}
	if _, err := Bind(listReq{orderBy: "secret"}, &p, testSchema); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("bad order: got %v", err)
	}
}
