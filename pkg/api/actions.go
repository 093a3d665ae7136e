package api

import "encoding/json"

// ActionType identifies a computer-use action variant.
type ActionType string

const (
	ActionTypeClick       ActionType = "click"
	ActionTypeDoubleClick ActionType = "double_click"
	ActionTypeDrag        ActionType = "drag"
	ActionTypeKeypress    ActionType = "keypress"
	ActionTypeMove        ActionType = "move"
	ActionTypeScreenshot  ActionType = "screenshot"
	ActionTypeScroll      ActionType = "scroll"
	ActionTypeType        ActionType = "type"
	ActionTypeWait        ActionType = "wait"
)

// MouseButton is the button pressed during a click action.
type MouseButton string

const (
	MouseButtonLeft    MouseButton = "left"
	MouseButtonRight   MouseButton = "right"
	MouseButtonWheel   MouseButton = "wheel"
	MouseButtonBack    MouseButton = "back"
	MouseButtonForward MouseButton = "forward"
)

// Point is a single coordinate on a drag path.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Action is a UI-automation primitive issued by a computer-use tool call.
// Each variant carries only the coordinates and keys relevant to its kind.
type Action struct {
	Type ActionType `json:"-"`

	// click, double_click, move, scroll
	X int `json:"-"`
	Y int `json:"-"`

	// click
	Button MouseButton `json:"-"`

	// drag
	Path []Point `json:"-"`

	// keypress
	Keys []string `json:"-"`

	// scroll
	ScrollX int `json:"-"`
	ScrollY int `json:"-"`

	// type
	Text string `json:"-"`
}

// MarshalJSON emits only the fields belonging to the action's variant.
func (a Action) MarshalJSON() ([]byte, error) {
	switch a.Type {
	case ActionTypeClick:
		return json.Marshal(struct {
			Type   ActionType  `json:"type"`
			Button MouseButton `json:"button"`
			X      int         `json:"x"`
			Y      int         `json:"y"`
		}{a.Type, a.Button, a.X, a.Y})
	case ActionTypeDoubleClick, ActionTypeMove:
		return json.Marshal(struct {
			Type ActionType `json:"type"`
			X    int        `json:"x"`
			Y    int        `json:"y"`
		}{a.Type, a.X, a.Y})
	case ActionTypeDrag:
		path := a.Path
		if path == nil {
			path = []Point{}
		}
		return json.Marshal(struct {
			Type ActionType `json:"type"`
			Path []Point    `json:"path"`
		}{a.Type, path})
	case ActionTypeKeypress:
		keys := a.Keys
		if keys == nil {
			keys = []string{}
		}
		return json.Marshal(struct {
			Type ActionType `json:"type"`
			Keys []string   `json:"keys"`
		}{a.Type, keys})
	case ActionTypeScroll:
		return json.Marshal(struct {
			Type    ActionType `json:"type"`
			ScrollX int        `json:"scroll_x"`
			ScrollY int        `json:"scroll_y"`
			X       int        `json:"x"`
			Y       int        `json:"y"`
		}{a.Type, a.ScrollX, a.ScrollY, a.X, a.Y})
	case ActionTypeType:
		return json.Marshal(struct {
			Type ActionType `json:"type"`
			Text string     `json:"text"`
		}{a.Type, a.Text})
	case ActionTypeScreenshot, ActionTypeWait:
		return json.Marshal(struct {
			Type ActionType `json:"type"`
		}{a.Type})
	default:
		return nil, NewUnknownVariant("type", string(a.Type))
	}
}

// UnmarshalJSON dispatches on the action type and checks the per-variant
// required fields.
func (a *Action) UnmarshalJSON(data []byte) error {
	var w struct {
		Type    *ActionType  `json:"type"`
		Button  *MouseButton `json:"button"`
		X       int          `json:"x"`
		Y       int          `json:"y"`
		Path    []Point      `json:"path"`
		Keys    []string     `json:"keys"`
		ScrollX int          `json:"scroll_x"`
		ScrollY int          `json:"scroll_y"`
		Text    *string      `json:"text"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == nil {
		return NewMissingDiscriminator("type")
	}

	switch *w.Type {
	case ActionTypeClick:
		if w.Button == nil {
			return NewMissingRequiredField("button")
		}
		switch *w.Button {
		case MouseButtonLeft, MouseButtonRight, MouseButtonWheel, MouseButtonBack, MouseButtonForward:
		default:
			return NewOutOfRange("button",
				"button must be one of 'left', 'right', 'wheel', 'back', or 'forward'")
		}
		*a = Action{Type: ActionTypeClick, Button: *w.Button, X: w.X, Y: w.Y}
	case ActionTypeDoubleClick, ActionTypeMove:
		*a = Action{Type: *w.Type, X: w.X, Y: w.Y}
	case ActionTypeDrag:
		if w.Path == nil {
			return NewMissingRequiredField("path")
		}
		*a = Action{Type: ActionTypeDrag, Path: w.Path}
	case ActionTypeKeypress:
		if w.Keys == nil {
			return NewMissingRequiredField("keys")
		}
		*a = Action{Type: ActionTypeKeypress, Keys: w.Keys}
	case ActionTypeScroll:
		*a = Action{Type: ActionTypeScroll, ScrollX: w.ScrollX, ScrollY: w.ScrollY, X: w.X, Y: w.Y}
	case ActionTypeType:
		if w.Text == nil {
			return NewMissingRequiredField("text")
		}
		*a = Action{Type: ActionTypeType, Text: *w.Text}
	case ActionTypeScreenshot, ActionTypeWait:
		*a = Action{Type: *w.Type}
	default:
		return NewUnknownVariant("type", string(*w.Type))
	}
	return nil
}

// SafetyCheck describes a safety check attached to a computer call. Pending
// checks on a computer_call must be acknowledged on the matching
// computer_call_output before the output is accepted.
type SafetyCheck struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ComputerScreenshot is the screenshot payload of a computer_call_output.
// Its type discriminator is always "computer_screenshot".
type ComputerScreenshot struct {
	Type     string `json:"type"`
	FileID   string `json:"file_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// ComputerScreenshotType is the sole discriminator value for a
// computer_call_output screenshot payload.
const ComputerScreenshotType = "computer_screenshot"
