package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestFilterRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
	}{
		{
			name: "comparison string",
			filter: Filter{Comparison: &ComparisonFilter{
				Key: "region", Op: ComparisonEq, Value: "emea",
			}},
		},
		{
			name: "comparison number",
			filter: Filter{Comparison: &ComparisonFilter{
				Key: "year", Op: ComparisonGte, Value: float64(2020),
			}},
		},
		{
			name: "comparison bool",
			filter: Filter{Comparison: &ComparisonFilter{
				Key: "archived", Op: ComparisonNe, Value: true,
			}},
		},
		{
			name: "compound and of two comparisons",
			filter: Filter{Compound: &CompoundFilter{
				Op: CompoundAnd,
				Filters: []Filter{
					{Comparison: &ComparisonFilter{Key: "region", Op: ComparisonEq, Value: "emea"}},
					{Comparison: &ComparisonFilter{Key: "year", Op: ComparisonLt, Value: float64(2024)}},
				},
			}},
		},
		{
			name: "or nested inside and",
			filter: Filter{Compound: &CompoundFilter{
				Op: CompoundAnd,
				Filters: []Filter{
					{Compound: &CompoundFilter{
						Op: CompoundOr,
						Filters: []Filter{
							{Comparison: &ComparisonFilter{Key: "tier", Op: ComparisonEq, Value: "gold"}},
							{Comparison: &ComparisonFilter{Key: "tier", Op: ComparisonEq, Value: "silver"}},
						},
					}},
					{Comparison: &ComparisonFilter{Key: "active", Op: ComparisonEq, Value: true}},
				},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, tt.filter)
			assertDeepEqual(t, got, tt.filter)
		})
	}
}

func TestFilterUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind ErrorKind
	}{
		{"missing type", `{"key":"k","value":"v"}`, KindMissingDiscriminator},
		{"unknown type", `{"type":"xor","filters":[]}`, KindUnknownVariant},
		{"comparison without key", `{"type":"eq","value":"v"}`, KindMissingRequiredField},
		{"comparison without value", `{"type":"eq","key":"k"}`, KindMissingRequiredField},
		{"comparison with object value", `{"type":"eq","key":"k","value":{"a":1}}`, KindOutOfRange},
		{"compound without filters", `{"type":"and"}`, KindMissingRequiredField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Filter
			err := json.Unmarshal([]byte(tt.json), &f)
			wantValidationError(t, err, tt.kind)
		})
	}
}

func TestFilterNestedErrorPath(t *testing.T) {
	var f Filter
	data := `{"type":"and","filters":[{"type":"eq","key":"k","value":"v"},{"type":"eq","key":"k"}]}`
	err := json.Unmarshal([]byte(data), &f)
	verr := wantValidationError(t, err, KindMissingRequiredField)
	if !strings.HasPrefix(verr.Param, "filters[1]") {
		t.Errorf("param = %q, want filters[1] prefix", verr.Param)
	}
}

// nestedFilterJSON builds a compound filter nested to the given depth. Depth 1
// is a bare comparison.
func nestedFilterJSON(depth int) string {
	inner := `{"type":"eq","key":"k","value":"v"}`
	for i := 1; i < depth; i++ {
		inner = fmt.Sprintf(`{"type":"and","filters":[%s]}`, inner)
	}
	return inner
}

func TestFilterDepthBound(t *testing.T) {
	var f Filter
	if err := json.Unmarshal([]byte(nestedFilterJSON(MaxFilterDepth)), &f); err != nil {
		t.Fatalf("depth %d should be accepted: %v", MaxFilterDepth, err)
	}
	if got := f.Depth(); got != MaxFilterDepth {
		t.Errorf("Depth() = %d, want %d", got, MaxFilterDepth)
	}

	err := json.Unmarshal([]byte(nestedFilterJSON(MaxFilterDepth+1)), &f)
	wantValidationError(t, err, KindFilterTooDeep)
}
