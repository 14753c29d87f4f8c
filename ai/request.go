package ai

const (
	roleSystem = "system"
	roleUser   = "user"

	temperature = 0.3
)

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewRequest(model, systemPrompt, code string) *ChatRequest {
	return &ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: roleSystem, Content: systemPrompt},
			{Role: roleUser, Content: UserPrompt(code)},
		},
		Temperature: temperature,
	}
}
