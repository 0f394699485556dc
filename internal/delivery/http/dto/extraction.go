package dto

// ExtractionRequest keeps Text as a pointer so a missing field can be told
// apart from an empty string.
type ExtractionRequest struct {
	Text *string `json:"text" validate:"required"`
}

type ExtractionResponse struct {
	Skills []string `json:"skills"`
}
