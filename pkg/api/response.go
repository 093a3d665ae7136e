package api

// ResponseStatus represents the terminal or in-flight status of a response.
type ResponseStatus string

const (
	ResponseStatusInProgress ResponseStatus = "in_progress"
	ResponseStatusCompleted  ResponseStatus = "completed"
	ResponseStatusIncomplete ResponseStatus = "incomplete"
	ResponseStatusFailed     ResponseStatus = "failed"
)

// IsTerminal reports whether the status ends a response's lifecycle.
func (s ResponseStatus) IsTerminal() bool {
	switch s {
	case ResponseStatusCompleted, ResponseStatusIncomplete, ResponseStatusFailed:
		return true
	}
	return false
}

// ErrorCode is the closed enumeration of generation error codes surfaced in
// Response.Error.
type ErrorCode string

const (
	ErrServerError                 ErrorCode = "server_error"
	ErrRateLimitExceeded           ErrorCode = "rate_limit_exceeded"
	ErrInvalidPrompt               ErrorCode = "invalid_prompt"
	ErrVectorStoreTimeout          ErrorCode = "vector_store_timeout"
	ErrInvalidImage                ErrorCode = "invalid_image"
	ErrInvalidImageFormat          ErrorCode = "invalid_image_format"
	ErrInvalidBase64Image          ErrorCode = "invalid_base64_image"
	ErrInvalidImageURL             ErrorCode = "invalid_image_url"
	ErrImageTooLarge               ErrorCode = "image_too_large"
	ErrImageTooSmall               ErrorCode = "image_too_small"
	ErrImageParseError             ErrorCode = "image_parse_error"
	ErrImageContentPolicyViolation ErrorCode = "image_content_policy_violation"
	ErrInvalidImageMode            ErrorCode = "invalid_image_mode"
	ErrImageFileTooLarge           ErrorCode = "image_file_too_large"
	ErrUnsupportedImageMediaType   ErrorCode = "unsupported_image_media_type"
	ErrEmptyImageFile              ErrorCode = "empty_image_file"
	ErrFailedToDownloadImage       ErrorCode = "failed_to_download_image"
	ErrImageFileNotFound           ErrorCode = "image_file_not_found"
)

// errorCodes is the closed set of valid generation error codes.
var errorCodes = map[ErrorCode]bool{
	ErrServerError:                 true,
	ErrRateLimitExceeded:           true,
	ErrInvalidPrompt:               true,
	ErrVectorStoreTimeout:          true,
	ErrInvalidImage:                true,
	ErrInvalidImageFormat:          true,
	ErrInvalidBase64Image:          true,
	ErrInvalidImageURL:             true,
	ErrImageTooLarge:               true,
	ErrImageTooSmall:               true,
	ErrImageParseError:             true,
	ErrImageContentPolicyViolation: true,
	ErrInvalidImageMode:            true,
	ErrImageFileTooLarge:           true,
	ErrUnsupportedImageMediaType:   true,
	ErrEmptyImageFile:              true,
	ErrFailedToDownloadImage:       true,
	ErrImageFileNotFound:           true,
}

// Valid reports whether the code belongs to the closed enumeration.
func (c ErrorCode) Valid() bool {
	return errorCodes[c]
}

// ResponseError is the structured error of a failed response.
type ResponseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// IncompleteReason explains why a response stopped early.
type IncompleteReason string

const (
	IncompleteMaxOutputTokens IncompleteReason = "max_output_tokens"
	IncompleteContentFilter   IncompleteReason = "content_filter"
)

// IncompleteDetails provides information about why a response is incomplete.
type IncompleteDetails struct {
	Reason IncompleteReason `json:"reason,omitempty"`
}

// InputTokensDetails breaks down input token usage.
type InputTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

// OutputTokensDetails breaks down output token usage.
type OutputTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

// Usage holds token usage counters for a finished response.
type Usage struct {
	InputTokens         int                 `json:"input_tokens"`
	InputTokensDetails  InputTokensDetails  `json:"input_tokens_details"`
	OutputTokens        int                 `json:"output_tokens"`
	OutputTokensDetails OutputTokensDetails `json:"output_tokens_details"`
	TotalTokens         int                 `json:"total_tokens"`
}

// Response is the canonical outbound response object. Nullable fields use
// pointer types and serialize as explicit null when unset; plain optional
// fields are omitted. Invariants: status "failed" implies Error is set,
// status "incomplete" implies IncompleteDetails.Reason is set, and Usage is
// populated exactly when the status is terminal.
type Response struct {
	ID                 string             `json:"id"`
	Object             string             `json:"object"`
	CreatedAt          int64              `json:"created_at"`
	Status             ResponseStatus     `json:"status"`
	Error              *ResponseError     `json:"error"`
	IncompleteDetails  *IncompleteDetails `json:"incomplete_details"`
	Instructions       *string            `json:"instructions"`
	MaxOutputTokens    *int               `json:"max_output_tokens"`
	Metadata           map[string]string  `json:"metadata"`
	Model              string             `json:"model"`
	Output             []Item             `json:"output"`
	ParallelToolCalls  bool               `json:"parallel_tool_calls"`
	PreviousResponseID *string            `json:"previous_response_id"`
	Reasoning          *ReasoningConfig   `json:"reasoning"`
	Store              bool               `json:"store"`
	Temperature        *float64           `json:"temperature"`
	Text               *TextConfig        `json:"text"`
	ToolChoice         ToolChoice         `json:"tool_choice"`
	Tools              []Tool             `json:"tools"`
	TopP               *float64           `json:"top_p"`
	Truncation         string             `json:"truncation"`
	Usage              *Usage             `json:"usage"`
	User               string             `json:"user,omitempty"`
}

// ResponseObjectType is the fixed object discriminator of a Response.
const ResponseObjectType = "response"
