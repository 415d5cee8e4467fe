package models

// TokenUsage is the payload of the llm-token-usage event.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatMessage is a single user/assistant turn as seen by plugins.
type ChatMessage struct {
	ID          string `json:"id"`
	CharacterID string `json:"characterId"`
	Role        string `json:"role"`
	Content     string `json:"content"`
}
