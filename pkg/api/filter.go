package api

import (
	"encoding/json"
	"fmt"
)

// MaxFilterDepth bounds the nesting depth of filter expressions. Input
// nested deeper than this is rejected with FilterTooDeep during decoding.
const MaxFilterDepth = 16

// ComparisonOp is the operator of a ComparisonFilter leaf.
type ComparisonOp string

const (
	ComparisonEq  ComparisonOp = "eq"
	ComparisonNe  ComparisonOp = "ne"
	ComparisonGt  ComparisonOp = "gt"
	ComparisonGte ComparisonOp = "gte"
	ComparisonLt  ComparisonOp = "lt"
	ComparisonLte ComparisonOp = "lte"
)

// CompoundOp is the operator of a CompoundFilter node.
type CompoundOp string

const (
	CompoundAnd CompoundOp = "and"
	CompoundOr  CompoundOp = "or"
)

// Filter is a node in a boolean filter expression tree over file attributes:
// either a ComparisonFilter leaf or a CompoundFilter combining nested
// filters. Exactly one of the two fields is set.
type Filter struct {
	Comparison *ComparisonFilter
	Compound   *CompoundFilter
}

// ComparisonFilter compares an attribute key against a scalar value.
// Value is a string, a number (float64), or a bool.
type ComparisonFilter struct {
	Key   string       `json:"key"`
	Op    ComparisonOp `json:"type"`
	Value any          `json:"value"`
}

// CompoundFilter combines an ordered list of nested filters with a boolean
// operator. Nested elements are themselves comparison or compound filters;
// no other shape is admitted at that position.
type CompoundFilter struct {
	Op      CompoundOp `json:"type"`
	Filters []Filter   `json:"filters"`
}

// MarshalJSON serializes whichever variant the node holds.
func (f Filter) MarshalJSON() ([]byte, error) {
	switch {
	case f.Comparison != nil:
		return json.Marshal(f.Comparison)
	case f.Compound != nil:
		return json.Marshal(f.Compound)
	default:
		return nil, fmt.Errorf("filter node has neither comparison nor compound variant")
	}
}

// UnmarshalJSON dispatches on the type discriminator: comparison operators
// produce a leaf, "and"/"or" recurse into the nested filter list. Depth is
// tracked explicitly so adversarial nesting fails with FilterTooDeep instead
// of exhausting the stack.
func (f *Filter) UnmarshalJSON(data []byte) error {
	return f.decode(data, 0)
}

func (f *Filter) decode(data []byte, depth int) error {
	if depth >= MaxFilterDepth {
		return NewFilterTooDeep("filters")
	}

	var w struct {
		Type    *string           `json:"type"`
		Key     string            `json:"key"`
		Value   any               `json:"value"`
		Filters []json.RawMessage `json:"filters"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == nil {
		return NewMissingDiscriminator("type")
	}

	switch op := *w.Type; op {
	case string(ComparisonEq), string(ComparisonNe), string(ComparisonGt),
		string(ComparisonGte), string(ComparisonLt), string(ComparisonLte):
		if w.Key == "" {
			return NewMissingRequiredField("key")
		}
		switch w.Value.(type) {
		case string, float64, bool:
		case nil:
			return NewMissingRequiredField("value")
		default:
			return NewOutOfRange("value", "value must be a string, number, or boolean")
		}
		*f = Filter{Comparison: &ComparisonFilter{Key: w.Key, Op: ComparisonOp(op), Value: w.Value}}
	case string(CompoundAnd), string(CompoundOr):
		if w.Filters == nil {
			return NewMissingRequiredField("filters")
		}
		nested := make([]Filter, len(w.Filters))
		for i, raw := range w.Filters {
			if err := nested[i].decode(raw, depth+1); err != nil {
				if verr, ok := err.(*ValidationError); ok {
					return verr.At(fmt.Sprintf("filters[%d]", i))
				}
				return err
			}
		}
		*f = Filter{Compound: &CompoundFilter{Op: CompoundOp(op), Filters: nested}}
	default:
		return NewUnknownVariant("type", op)
	}
	return nil
}

// Depth returns the nesting depth of the filter tree. A bare comparison
// leaf has depth 1.
func (f *Filter) Depth() int {
	if f.Compound == nil {
		return 1
	}
	max := 0
	for i := range f.Compound.Filters {
		if d := f.Compound.Filters[i].Depth(); d > max {
			max = d
		}
	}
	return max + 1
}
