package ai

import (
	"errors"
	"fmt"
)

// ChatCompletion is the part of the chat-completions response we read
type ChatCompletion struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int              `json:"index"`
	Message      *ResponseMessage `json:"message"`
	FinishReason string           `json:"finish_reason"`
}

type ResponseMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// Content returns the text of the first choice
func (c *ChatCompletion) Content() (string, error) {
	if len(c.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}
	msg := c.Choices[0].Message
	if msg == nil {
		return "", errors.New("chat completion: choice has no message")
	}
	if msg.Content == nil {
		return "", errors.New("chat completion: message has no content")
	}
	return *msg.Content, nil
}

// StatusError is a non-2xx answer from the API, body is kept verbatim
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.Code, e.Body)
}
