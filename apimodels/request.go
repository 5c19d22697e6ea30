package apimodels

type AnalyzeRequest struct {
	// Text is the input to analyze. Whitespace-only text is rejected.
	Text string `json:"text" validate:"required,notblank"`
}
