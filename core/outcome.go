package core

// ErrorKind classifies a failed explanation
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	InvalidInput     ErrorKind = "invalid_input"
	UnsupportedModel ErrorKind = "unsupported_model"
	ApiError         ErrorKind = "api_error"
	Unexpected       ErrorKind = "unexpected"
)

// Outcome is the result of one explanation attempt, either the explanation
// text or a classified error, never both
type Outcome struct {
	Explanation string
	Kind        ErrorKind
	Message     string
}

func Success(explanation string) Outcome {
	return Outcome{Explanation: explanation}
}

func Failure(kind ErrorKind, message string) Outcome {
	return Outcome{Kind: kind, Message: message}
}

func (o Outcome) IsError() bool {
	return o.Kind != KindNone
}

// String renders the outcome as text ready for display
func (o Outcome) String() string {
	switch o.Kind {
	case KindNone:
		return o.Explanation
	case ApiError:
		return "API Error: " + o.Message
	case Unexpected:
		return "Unexpected error: " + o.Message
	default:
		return "Error: " + o.Message
	}
}
