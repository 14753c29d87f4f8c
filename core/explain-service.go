package core

import "context"

type ExplainService interface {
	// Explain never fails past its boundary, every error is folded into the Outcome
	Explain(ctx context.Context, code, level, model string) Outcome
	Models() []string
	Levels() []string
}
