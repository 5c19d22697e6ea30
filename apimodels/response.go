package apimodels

type AnalyzeResponse struct {
	// The submitted text, echoed verbatim
	OriginalText string `json:"original_text"`

	// Number of whitespace-delimited tokens
	WordCount int `json:"word_count"`

	// Number of characters once all whitespace is removed
	CharacterCount int `json:"character_count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
