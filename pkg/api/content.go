package api

import "encoding/json"

// ContentType identifies an input content part variant.
type ContentType string

const (
	ContentTypeInputText  ContentType = "input_text"
	ContentTypeInputImage ContentType = "input_image"
	ContentTypeInputFile  ContentType = "input_file"
)

// ImageDetail is the detail level of an input image.
type ImageDetail string

const (
	ImageDetailHigh ImageDetail = "high"
	ImageDetailLow  ImageDetail = "low"
	ImageDetailAuto ImageDetail = "auto"
)

// ContentPart is one part of user-supplied message content. The Type field
// selects the variant: input_text carries Text, input_image carries exactly
// one of FileID/ImageURL plus a Detail level, input_file carries file data
// or a file reference.
type ContentPart struct {
	Type ContentType `json:"-"`

	// input_text
	Text string `json:"-"`

	// input_image
	Detail   ImageDetail `json:"-"`
	FileID   string      `json:"-"`
	ImageURL string      `json:"-"`

	// input_file (FileID shared with input_image)
	FileData string `json:"-"`
	Filename string `json:"-"`
}

// MarshalJSON emits only the fields belonging to the part's variant.
func (p ContentPart) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case ContentTypeInputText:
		return json.Marshal(struct {
			Type ContentType `json:"type"`
			Text string      `json:"text"`
		}{p.Type, p.Text})
	case ContentTypeInputImage:
		return json.Marshal(struct {
			Type     ContentType `json:"type"`
			Detail   ImageDetail `json:"detail"`
			FileID   string      `json:"file_id,omitempty"`
			ImageURL string      `json:"image_url,omitempty"`
		}{p.Type, p.Detail, p.FileID, p.ImageURL})
	case ContentTypeInputFile:
		return json.Marshal(struct {
			Type     ContentType `json:"type"`
			FileData string      `json:"file_data,omitempty"`
			FileID   string      `json:"file_id,omitempty"`
			Filename string      `json:"filename,omitempty"`
		}{p.Type, p.FileData, p.FileID, p.Filename})
	default:
		return nil, NewUnknownVariant("type", string(p.Type))
	}
}

// UnmarshalJSON dispatches on the type discriminator and rejects records
// outside the closed input content set.
func (p *ContentPart) UnmarshalJSON(data []byte) error {
	var w struct {
		Type     *ContentType `json:"type"`
		Text     *string      `json:"text"`
		Detail   ImageDetail  `json:"detail"`
		FileID   string       `json:"file_id"`
		ImageURL string       `json:"image_url"`
		FileData string       `json:"file_data"`
		Filename string       `json:"filename"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == nil {
		return NewMissingDiscriminator("type")
	}

	switch *w.Type {
	case ContentTypeInputText:
		if w.Text == nil {
			return NewMissingRequiredField("text")
		}
		*p = ContentPart{Type: ContentTypeInputText, Text: *w.Text}
	case ContentTypeInputImage:
		detail := w.Detail
		if detail == "" {
			detail = ImageDetailAuto
		}
		*p = ContentPart{
			Type:     ContentTypeInputImage,
			Detail:   detail,
			FileID:   w.FileID,
			ImageURL: w.ImageURL,
		}
	case ContentTypeInputFile:
		*p = ContentPart{
			Type:     ContentTypeInputFile,
			FileData: w.FileData,
			FileID:   w.FileID,
			Filename: w.Filename,
		}
	default:
		return NewUnknownVariant("type", string(*w.Type))
	}
	return nil
}

// Validate checks variant-specific field constraints.
func (p *ContentPart) Validate() *ValidationError {
	switch p.Type {
	case ContentTypeInputText:
		return nil
	case ContentTypeInputImage:
		switch p.Detail {
		case ImageDetailHigh, ImageDetailLow, ImageDetailAuto:
		default:
			return NewOutOfRange("detail", "detail must be one of 'high', 'low', or 'auto'")
		}
		if (p.FileID == "") == (p.ImageURL == "") {
			return NewMutuallyExclusive("image_url",
				"input_image must supply exactly one of file_id or image_url")
		}
		return nil
	case ContentTypeInputFile:
		return nil
	default:
		return NewUnknownVariant("type", string(p.Type))
	}
}

// OutputContentType identifies a model output content part variant.
type OutputContentType string

const (
	OutputContentTypeText    OutputContentType = "output_text"
	OutputContentTypeRefusal OutputContentType = "refusal"
)

// OutputContent is one part of assistant message content: generated text
// with its annotations, or a refusal explanation.
type OutputContent struct {
	Type OutputContentType `json:"-"`

	// output_text
	Text        string       `json:"-"`
	Annotations []Annotation `json:"-"`

	// refusal
	Refusal string `json:"-"`
}

// MarshalJSON ensures annotations are always an array on the wire, never null.
func (p OutputContent) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case OutputContentTypeText:
		annotations := p.Annotations
		if annotations == nil {
			annotations = []Annotation{}
		}
		return json.Marshal(struct {
			Type        OutputContentType `json:"type"`
			Text        string            `json:"text"`
			Annotations []Annotation      `json:"annotations"`
		}{p.Type, p.Text, annotations})
	case OutputContentTypeRefusal:
		return json.Marshal(struct {
			Type    OutputContentType `json:"type"`
			Refusal string            `json:"refusal"`
		}{p.Type, p.Refusal})
	default:
		return nil, NewUnknownVariant("type", string(p.Type))
	}
}

// UnmarshalJSON deserializes an OutputContent, dispatching on type.
func (p *OutputContent) UnmarshalJSON(data []byte) error {
	var w struct {
		Type        *OutputContentType `json:"type"`
		Text        string             `json:"text"`
		Annotations []Annotation       `json:"annotations"`
		Refusal     *string            `json:"refusal"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == nil {
		return NewMissingDiscriminator("type")
	}

	switch *w.Type {
	case OutputContentTypeText:
		*p = OutputContent{Type: OutputContentTypeText, Text: w.Text, Annotations: w.Annotations}
	case OutputContentTypeRefusal:
		if w.Refusal == nil {
			return NewMissingRequiredField("refusal")
		}
		*p = OutputContent{Type: OutputContentTypeRefusal, Refusal: *w.Refusal}
	default:
		return NewUnknownVariant("type", string(*w.Type))
	}
	return nil
}

// AnnotationType identifies an annotation variant.
type AnnotationType string

const (
	AnnotationTypeFileCitation AnnotationType = "file_citation"
	AnnotationTypeURLCitation  AnnotationType = "url_citation"
	AnnotationTypeFilePath     AnnotationType = "file_path"
)

// Annotation marks a region of output text: a file citation, a URL citation
// with character offsets, or a file path reference.
type Annotation struct {
	Type AnnotationType `json:"-"`

	// file_citation, file_path
	FileID string `json:"-"`
	Index  int    `json:"-"`

	// url_citation
	StartIndex int    `json:"-"`
	EndIndex   int    `json:"-"`
	Title      string `json:"-"`
	URL        string `json:"-"`
}

// MarshalJSON emits only the fields belonging to the annotation's variant.
func (a Annotation) MarshalJSON() ([]byte, error) {
	switch a.Type {
	case AnnotationTypeFileCitation, AnnotationTypeFilePath:
		return json.Marshal(struct {
			Type   AnnotationType `json:"type"`
			FileID string         `json:"file_id"`
			Index  int            `json:"index"`
		}{a.Type, a.FileID, a.Index})
	case AnnotationTypeURLCitation:
		return json.Marshal(struct {
			Type       AnnotationType `json:"type"`
			StartIndex int            `json:"start_index"`
			EndIndex   int            `json:"end_index"`
			Title      string         `json:"title"`
			URL        string         `json:"url"`
		}{a.Type, a.StartIndex, a.EndIndex, a.Title, a.URL})
	default:
		return nil, NewUnknownVariant("type", string(a.Type))
	}
}

// UnmarshalJSON dispatches on the annotation type. URL citations enforce
// start_index <= end_index.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var w struct {
		Type       *AnnotationType `json:"type"`
		FileID     string          `json:"file_id"`
		Index      int             `json:"index"`
		StartIndex int             `json:"start_index"`
		EndIndex   int             `json:"end_index"`
		Title      string          `json:"title"`
		URL        string          `json:"url"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == nil {
		return NewMissingDiscriminator("type")
	}

	switch *w.Type {
	case AnnotationTypeFileCitation, AnnotationTypeFilePath:
		*a = Annotation{Type: *w.Type, FileID: w.FileID, Index: w.Index}
	case AnnotationTypeURLCitation:
		if w.StartIndex > w.EndIndex {
			return NewOutOfRange("start_index", "start_index must not exceed end_index")
		}
		*a = Annotation{
			Type:       AnnotationTypeURLCitation,
			StartIndex: w.StartIndex,
			EndIndex:   w.EndIndex,
			Title:      w.Title,
			URL:        w.URL,
		}
	default:
		return NewUnknownVariant("type", string(*w.Type))
	}
	return nil
}
