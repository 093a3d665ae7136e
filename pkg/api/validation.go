package api

import "fmt"

// ValidationLimits holds configurable limits for request validation.
type ValidationLimits struct {
	MaxInputItems       int
	MaxTools            int
	MaxMetadataEntries  int
	MaxMetadataKeyLen   int
	MaxMetadataValueLen int
}

// DefaultValidationLimits returns the protocol's documented limits.
func DefaultValidationLimits() ValidationLimits {
	return ValidationLimits{
		MaxInputItems:       1000,
		MaxTools:            128,
		MaxMetadataEntries:  16,
		MaxMetadataKeyLen:   64,
		MaxMetadataValueLen: 512,
	}
}

// ValidateRequest checks a CreateResponseRequest for validity. It returns a
// *ValidationError describing the first failure, or nil if the request is
// valid. The check is a pure pass: no caller-visible state is mutated.
func ValidateRequest(req *CreateResponseRequest, limits ValidationLimits) *ValidationError {
	if req.Model == "" {
		return NewMissingRequiredField("model")
	}

	if len(req.Input) == 0 {
		return NewMissingRequiredField("input")
	}
	if limits.MaxInputItems > 0 && len(req.Input) > limits.MaxInputItems {
		return NewOutOfRange("input",
			fmt.Sprintf("input exceeds maximum of %d items", limits.MaxInputItems))
	}
	for i := range req.Input {
		if err := ValidateItem(&req.Input[i]); err != nil {
			return err.At(fmt.Sprintf("input[%d]", i))
		}
	}

	if req.MaxOutputTokens != nil && *req.MaxOutputTokens <= 0 {
		return NewOutOfRange("max_output_tokens", "max_output_tokens must be positive")
	}
	if req.Temperature != nil && (*req.Temperature < 0.0 || *req.Temperature > 2.0) {
		return NewOutOfRange("temperature", "temperature must be between 0.0 and 2.0")
	}
	if req.TopP != nil && (*req.TopP < 0.0 || *req.TopP > 1.0) {
		return NewOutOfRange("top_p", "top_p must be between 0.0 and 1.0")
	}
	if req.Truncation != "" && req.Truncation != TruncationAuto && req.Truncation != TruncationDisabled {
		return NewOutOfRange("truncation", "truncation must be 'auto' or 'disabled'")
	}

	for i, inc := range req.Include {
		switch inc {
		case IncludeFileSearchResults, IncludeInputImageURL, IncludeComputerOutputImage:
		default:
			return NewUnknownVariant(fmt.Sprintf("include[%d]", i), string(inc))
		}
	}

	if err := validateReasoning(req.Reasoning); err != nil {
		return err
	}
	if err := validateTextConfig(req.Text); err != nil {
		return err
	}
	if err := validateMetadata(req.Metadata, limits); err != nil {
		return err
	}

	if limits.MaxTools > 0 && len(req.Tools) > limits.MaxTools {
		return NewOutOfRange("tools",
			fmt.Sprintf("tools exceeds maximum of %d", limits.MaxTools))
	}
	for i := range req.Tools {
		if err := req.Tools[i].Validate(); err != nil {
			return err.At(fmt.Sprintf("tools[%d]", i))
		}
	}

	if req.ToolChoice != nil && req.ToolChoice.Mode != "" {
		switch req.ToolChoice.Mode {
		case "none", "auto", "required":
		default:
			return NewUnknownVariant("tool_choice", req.ToolChoice.Mode)
		}
	}
	if _, err := ResolveToolChoice(req.ToolChoice, req.Tools); err != nil {
		return err
	}

	// Stateless requests cannot chain onto a stored response.
	if !req.ResolveStore() && req.PreviousResponseID != "" {
		return NewMutuallyExclusive("previous_response_id",
			"previous_response_id cannot be used with store=false")
	}

	return nil
}

// ValidateItem checks an Item for structural validity beyond what decoding
// already enforced: per-variant status sets and nested content constraints.
func ValidateItem(item *Item) *ValidationError {
	if item.Type == "" {
		return NewMissingDiscriminator("type")
	}

	if err := validateItemStatus(item); err != nil {
		return err
	}

	switch item.Type {
	case ItemTypeMessage:
		if item.Message == nil {
			return NewMissingRequiredField("content")
		}
		for i := range item.Message.Content {
			if err := item.Message.Content[i].Validate(); err != nil {
				return err.At(fmt.Sprintf("content[%d]", i))
			}
		}
		return nil
	case ItemTypeComputerCall:
		if item.ComputerCall == nil {
			return NewMissingRequiredField("action")
		}
		return nil
	case ItemTypeFileSearchCall:
		if item.FileSearchCall == nil {
			return NewMissingRequiredField("queries")
		}
		for i, res := range item.FileSearchCall.Results {
			if res.Score < 0 || res.Score > 1 {
				return NewOutOfRange(fmt.Sprintf("results[%d].score", i),
					"score must be between 0 and 1")
			}
		}
		return nil
	case ItemTypeWebSearchCall, ItemTypeComputerCallOutput, ItemTypeFunctionCall,
		ItemTypeFunctionCallOutput, ItemTypeReasoning:
		return nil
	case ItemTypeItemReference:
		if item.ID == "" {
			return NewMissingRequiredField("id")
		}
		return nil
	default:
		return NewUnknownVariant("type", string(item.Type))
	}
}

// validateItemStatus enforces the per-variant status literal sets. Search
// calls admit the transient "searching" status and "failed"; web search
// calls never report "incomplete".
func validateItemStatus(item *Item) *ValidationError {
	if item.Status == "" {
		return nil
	}
	var allowed []ItemStatus
	switch item.Type {
	case ItemTypeFileSearchCall:
		allowed = []ItemStatus{ItemStatusInProgress, ItemStatusSearching,
			ItemStatusCompleted, ItemStatusIncomplete, ItemStatusFailed}
	case ItemTypeWebSearchCall:
		allowed = []ItemStatus{ItemStatusInProgress, ItemStatusSearching,
			ItemStatusCompleted, ItemStatusFailed}
	default:
		allowed = []ItemStatus{ItemStatusInProgress, ItemStatusCompleted,
			ItemStatusIncomplete}
	}
	for _, s := range allowed {
		if item.Status == s {
			return nil
		}
	}
	return NewOutOfRange("status",
		fmt.Sprintf("status %q is not valid for item type %q", item.Status, item.Type))
}

func validateReasoning(rc *ReasoningConfig) *ValidationError {
	if rc == nil {
		return nil
	}
	if rc.Effort != nil {
		switch *rc.Effort {
		case ReasoningEffortLow, ReasoningEffortMedium, ReasoningEffortHigh:
		default:
			return NewOutOfRange("reasoning.effort",
				"effort must be one of 'low', 'medium', or 'high'")
		}
	}
	if rc.GenerateSummary != nil {
		switch *rc.GenerateSummary {
		case ReasoningSummaryConcise, ReasoningSummaryDetailed:
		default:
			return NewOutOfRange("reasoning.generate_summary",
				"generate_summary must be 'concise' or 'detailed'")
		}
	}
	return nil
}

func validateTextConfig(tc *TextConfig) *ValidationError {
	if tc == nil || tc.Format == nil {
		return nil
	}
	switch tc.Format.Type {
	case TextFormatText, TextFormatJSONObject:
		return nil
	case TextFormatJSONSchema:
		if len(tc.Format.Schema) == 0 {
			return NewMissingRequiredField("text.format.schema")
		}
		return nil
	case "":
		return NewMissingDiscriminator("text.format.type")
	default:
		return NewUnknownVariant("text.format.type", string(tc.Format.Type))
	}
}

func validateMetadata(md map[string]string, limits ValidationLimits) *ValidationError {
	if len(md) == 0 {
		return nil
	}
	if limits.MaxMetadataEntries > 0 && len(md) > limits.MaxMetadataEntries {
		return NewOutOfRange("metadata",
			fmt.Sprintf("metadata exceeds maximum of %d entries", limits.MaxMetadataEntries))
	}
	for k, v := range md {
		if limits.MaxMetadataKeyLen > 0 && len(k) > limits.MaxMetadataKeyLen {
			return NewOutOfRange("metadata",
				fmt.Sprintf("metadata key exceeds maximum length of %d", limits.MaxMetadataKeyLen))
		}
		if limits.MaxMetadataValueLen > 0 && len(v) > limits.MaxMetadataValueLen {
			return NewOutOfRange("metadata."+k,
				fmt.Sprintf("metadata value exceeds maximum length of %d", limits.MaxMetadataValueLen))
		}
	}
	return nil
}
