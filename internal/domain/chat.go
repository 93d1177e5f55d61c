package domain

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is the provider-agnostic chat message shape used by the use case
// and LLM integrations.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the decoded body of an inbound chat call.
type ChatRequest struct {
	SystemPrompt string
	Question     string
}

// ChatResponse is the JSON body returned to callers. Success carries Answer;
// failures carry Error and, for provider failures, the provider Status.
type ChatResponse struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
	Status int    `json:"status,omitempty"`
}

// CompletionRequest is a single chat completion call against the provider.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
}
