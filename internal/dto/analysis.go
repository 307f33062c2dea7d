package dto

// AnalyzeRequest is the text to run burnout analysis on.
type AnalyzeRequest struct {
	Text string `json:"text"`
}
