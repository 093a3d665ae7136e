package api

import (
	"encoding/json"
	"fmt"
)

// ToolType identifies a tool variant.
type ToolType string

const (
	ToolTypeFileSearch ToolType = "file_search"
	ToolTypeFunction   ToolType = "function"
	ToolTypeComputer   ToolType = "computer_use_preview"
	ToolTypeWebSearch  ToolType = "web_search_preview"

	// ToolTypeWebSearch20250311 is the dated alias of the web search tool.
	ToolTypeWebSearch20250311 ToolType = "web_search_preview_2025_03_11"
)

// Ranker names the ranking model used by file search.
type Ranker string

const (
	RankerAuto    Ranker = "auto"
	RankerDefault Ranker = "default-2024-11-15"
)

// RankingOptions tunes file search result ranking.
type RankingOptions struct {
	Ranker         Ranker   `json:"ranker,omitempty"`
	ScoreThreshold *float64 `json:"score_threshold,omitempty"`
}

// FileSearchTool searches the given vector stores, optionally constrained
// by an attribute filter.
type FileSearchTool struct {
	VectorStoreIDs []string        `json:"vector_store_ids"`
	Filters        *Filter         `json:"filters,omitempty"`
	MaxNumResults  *int            `json:"max_num_results,omitempty"`
	RankingOptions *RankingOptions `json:"ranking_options,omitempty"`
}

// FunctionTool declares a callable function with a JSON-schema parameter
// description.
type FunctionTool struct {
	Name        string          `json:"name"`
	Parameters  json.RawMessage `json:"parameters"`
	Strict      bool            `json:"strict"`
	Description string          `json:"description,omitempty"`
}

// Environment is the target environment of a computer-use tool.
type Environment string

const (
	EnvironmentMac     Environment = "mac"
	EnvironmentWindows Environment = "windows"
	EnvironmentUbuntu  Environment = "ubuntu"
	EnvironmentBrowser Environment = "browser"
)

// ComputerTool configures UI automation against a display.
type ComputerTool struct {
	DisplayWidth  float64     `json:"display_width"`
	DisplayHeight float64     `json:"display_height"`
	Environment   Environment `json:"environment"`
}

// SearchContextSize hints how much context window space a web search may use.
type SearchContextSize string

const (
	SearchContextLow    SearchContextSize = "low"
	SearchContextMedium SearchContextSize = "medium"
	SearchContextHigh   SearchContextSize = "high"
)

// UserLocation is an approximate user location for web search.
type UserLocation struct {
	Type     string `json:"type"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Region   string `json:"region,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// UserLocationApproximate is the sole discriminator value for UserLocation.
const UserLocationApproximate = "approximate"

// WebSearchTool configures web search.
type WebSearchTool struct {
	SearchContextSize SearchContextSize `json:"search_context_size,omitempty"`
	UserLocation      *UserLocation     `json:"user_location,omitempty"`
}

// Tool is a tagged union over the tool catalog entries a request may
// declare. The Type field selects which payload is populated.
type Tool struct {
	Type ToolType `json:"-"`

	FileSearch *FileSearchTool `json:"-"`
	Function   *FunctionTool   `json:"-"`
	Computer   *ComputerTool   `json:"-"`
	WebSearch  *WebSearchTool  `json:"-"`
}

// MarshalJSON produces the flat wire format with the variant's fields at the
// top level next to the type discriminator.
func (t Tool) MarshalJSON() ([]byte, error) {
	switch t.Type {
	case ToolTypeFileSearch:
		return json.Marshal(struct {
			Type ToolType `json:"type"`
			*FileSearchTool
		}{t.Type, t.FileSearch})
	case ToolTypeFunction:
		return json.Marshal(struct {
			Type ToolType `json:"type"`
			*FunctionTool
		}{t.Type, t.Function})
	case ToolTypeComputer:
		return json.Marshal(struct {
			Type ToolType `json:"type"`
			*ComputerTool
		}{t.Type, t.Computer})
	case ToolTypeWebSearch, ToolTypeWebSearch20250311:
		return json.Marshal(struct {
			Type ToolType `json:"type"`
			*WebSearchTool
		}{t.Type, t.WebSearch})
	default:
		return nil, NewUnknownVariant("type", string(t.Type))
	}
}

// UnmarshalJSON dispatches on the type discriminator into the matching
// variant payload.
func (t *Tool) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type *ToolType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Type == nil {
		return NewMissingDiscriminator("type")
	}

	switch *probe.Type {
	case ToolTypeFileSearch:
		var fs struct {
			VectorStoreIDs []string        `json:"vector_store_ids"`
			Filters        *Filter         `json:"filters"`
			MaxNumResults  *int            `json:"max_num_results"`
			RankingOptions *RankingOptions `json:"ranking_options"`
		}
		if err := json.Unmarshal(data, &fs); err != nil {
			return err
		}
		if fs.VectorStoreIDs == nil {
			return NewMissingRequiredField("vector_store_ids")
		}
		*t = Tool{Type: ToolTypeFileSearch, FileSearch: &FileSearchTool{
			VectorStoreIDs: fs.VectorStoreIDs,
			Filters:        fs.Filters,
			MaxNumResults:  fs.MaxNumResults,
			RankingOptions: fs.RankingOptions,
		}}
	case ToolTypeFunction:
		var fn struct {
			Name        *string         `json:"name"`
			Parameters  json.RawMessage `json:"parameters"`
			Strict      bool            `json:"strict"`
			Description string          `json:"description"`
		}
		if err := json.Unmarshal(data, &fn); err != nil {
			return err
		}
		if fn.Name == nil || *fn.Name == "" {
			return NewMissingRequiredField("name")
		}
		*t = Tool{Type: ToolTypeFunction, Function: &FunctionTool{
			Name:        *fn.Name,
			Parameters:  fn.Parameters,
			Strict:      fn.Strict,
			Description: fn.Description,
		}}
	case ToolTypeComputer:
		var ct struct {
			DisplayWidth  *float64     `json:"display_width"`
			DisplayHeight *float64     `json:"display_height"`
			Environment   *Environment `json:"environment"`
		}
		if err := json.Unmarshal(data, &ct); err != nil {
			return err
		}
		if ct.DisplayWidth == nil {
			return NewMissingRequiredField("display_width")
		}
		if ct.DisplayHeight == nil {
			return NewMissingRequiredField("display_height")
		}
		if ct.Environment == nil {
			return NewMissingRequiredField("environment")
		}
		*t = Tool{Type: ToolTypeComputer, Computer: &ComputerTool{
			DisplayWidth:  *ct.DisplayWidth,
			DisplayHeight: *ct.DisplayHeight,
			Environment:   *ct.Environment,
		}}
	case ToolTypeWebSearch, ToolTypeWebSearch20250311:
		var ws WebSearchTool
		if err := json.Unmarshal(data, &ws); err != nil {
			return err
		}
		*t = Tool{Type: *probe.Type, WebSearch: &ws}
	default:
		return NewUnknownVariant("type", string(*probe.Type))
	}
	return nil
}

// Validate checks the variant's enum and numeric bounds.
func (t *Tool) Validate() *ValidationError {
	switch t.Type {
	case ToolTypeFileSearch:
		fs := t.FileSearch
		if fs == nil {
			return NewMissingRequiredField("vector_store_ids")
		}
		if len(fs.VectorStoreIDs) == 0 {
			return NewMissingRequiredField("vector_store_ids")
		}
		if fs.MaxNumResults != nil && (*fs.MaxNumResults < 1 || *fs.MaxNumResults > 50) {
			return NewOutOfRange("max_num_results", "max_num_results must be between 1 and 50")
		}
		if ro := fs.RankingOptions; ro != nil {
			if ro.Ranker != "" && ro.Ranker != RankerAuto && ro.Ranker != RankerDefault {
				return NewOutOfRange("ranking_options.ranker",
					fmt.Sprintf("ranker must be %q or %q", RankerAuto, RankerDefault))
			}
			if ro.ScoreThreshold != nil && (*ro.ScoreThreshold < 0 || *ro.ScoreThreshold > 1) {
				return NewOutOfRange("ranking_options.score_threshold",
					"score_threshold must be between 0 and 1")
			}
		}
		if fs.Filters != nil && fs.Filters.Depth() > MaxFilterDepth {
			return NewFilterTooDeep("filters")
		}
		return nil
	case ToolTypeFunction:
		if t.Function == nil || t.Function.Name == "" {
			return NewMissingRequiredField("name")
		}
		return nil
	case ToolTypeComputer:
		ct := t.Computer
		if ct == nil {
			return NewMissingRequiredField("environment")
		}
		switch ct.Environment {
		case EnvironmentMac, EnvironmentWindows, EnvironmentUbuntu, EnvironmentBrowser:
		default:
			return NewOutOfRange("environment",
				"environment must be one of 'mac', 'windows', 'ubuntu', or 'browser'")
		}
		if ct.DisplayWidth <= 0 || ct.DisplayHeight <= 0 {
			return NewOutOfRange("display_width", "display dimensions must be positive")
		}
		return nil
	case ToolTypeWebSearch, ToolTypeWebSearch20250311:
		ws := t.WebSearch
		if ws == nil {
			return nil
		}
		switch ws.SearchContextSize {
		case "", SearchContextLow, SearchContextMedium, SearchContextHigh:
		default:
			return NewOutOfRange("search_context_size",
				"search_context_size must be one of 'low', 'medium', or 'high'")
		}
		if ws.UserLocation != nil && ws.UserLocation.Type != UserLocationApproximate {
			return NewUnknownVariant("user_location.type", ws.UserLocation.Type)
		}
		return nil
	default:
		return NewUnknownVariant("type", string(t.Type))
	}
}

// ToolChoice is how the model selects tools: one of the fixed policy
// literals ("none", "auto", "required") or a structured function selector.
type ToolChoice struct {
	Mode     string              `json:"-"`
	Function *ToolChoiceFunction `json:"-"`
}

// ToolChoiceFunction forces a specific function to be called by name.
type ToolChoiceFunction struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

var (
	// ToolChoiceAuto lets the model decide whether to use a tool.
	ToolChoiceAuto = ToolChoice{Mode: "auto"}
	// ToolChoiceRequired forces the model to use a tool.
	ToolChoiceRequired = ToolChoice{Mode: "required"}
	// ToolChoiceNone prevents the model from using any tool.
	ToolChoiceNone = ToolChoice{Mode: "none"}
)

// NewToolChoiceFunction creates a ToolChoice selecting a function by name.
func NewToolChoiceFunction(name string) ToolChoice {
	return ToolChoice{Function: &ToolChoiceFunction{Type: "function", Name: name}}
}

// MarshalJSON serializes ToolChoice as either a JSON string or a JSON object.
// The zero value encodes as "auto", the protocol default.
func (tc ToolChoice) MarshalJSON() ([]byte, error) {
	if tc.IsZero() {
		return json.Marshal("auto")
	}
	if tc.Function != nil {
		return json.Marshal(tc.Function)
	}
	return json.Marshal(tc.Mode)
}

// UnmarshalJSON deserializes ToolChoice from either form. Mode literals are
// checked against the closed policy set; objects must carry the "function"
// discriminator and a name.
func (tc *ToolChoice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "none", "auto", "required":
			*tc = ToolChoice{Mode: s}
			return nil
		default:
			return NewUnknownVariant("tool_choice", s)
		}
	}

	var f struct {
		Type *string `json:"type"`
		Name string  `json:"name"`
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return NewOutOfRange("tool_choice", "tool_choice must be a string or object")
	}
	if f.Type == nil {
		return NewMissingDiscriminator("tool_choice.type")
	}
	if *f.Type != "function" {
		return NewUnknownVariant("tool_choice.type", *f.Type)
	}
	if f.Name == "" {
		return NewMissingRequiredField("tool_choice.name")
	}
	*tc = NewToolChoiceFunction(f.Name)
	return nil
}

// IsZero reports whether the tool choice is unset.
func (tc ToolChoice) IsZero() bool {
	return tc.Mode == "" && tc.Function == nil
}

// ResolveToolChoice cross-checks a tool choice against the declared tool
// catalog and returns a name-indexed lookup of the function tools. A choice
// naming an undeclared function fails with UnknownToolChoice; a function
// choice with no tools at all fails with ToolChoiceWithoutTools.
func ResolveToolChoice(choice *ToolChoice, tools []Tool) (map[string]*FunctionTool, *ValidationError) {
	functions := make(map[string]*FunctionTool, len(tools))
	for _, tool := range tools {
		if tool.Type == ToolTypeFunction && tool.Function != nil {
			functions[tool.Function.Name] = tool.Function
		}
	}

	if choice == nil || choice.Function == nil {
		return functions, nil
	}
	if len(tools) == 0 {
		return nil, NewToolChoiceWithoutTools()
	}
	if _, ok := functions[choice.Function.Name]; !ok {
		return nil, NewUnknownToolChoice(choice.Function.Name)
	}
	return functions, nil
}
