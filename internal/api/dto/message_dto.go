package dto

// InsightRequest asks for an AI analysis of context data.
type InsightRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

// DraftMessageRequest asks for a short SMS draft.
type DraftMessageRequest struct {
	Topic    string `json:"topic"`
	Audience string `json:"audience"`
}
