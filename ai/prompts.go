package ai

const (
	LevelBeginner = "beginner"
	LevelExpert   = "expert"
)

var systemPrompts = map[string]string{
	LevelBeginner: "Explain this code simply for new programmers. Avoid jargon. Focus on basic concepts and what the code does overall.",
	LevelExpert:   "Provide technical analysis for experienced developers. Include optimization ideas, edge cases, and complexity assessment.",
}

// first one is the default
var supportedModels = []string{
	"llama-3.3-70b-versatile",
	"llama2-70b-4096",
}

const userPromptPrefix = "Explain this code:\n\n"

func DefaultModel() string {
	return supportedModels[0]
}

func SupportedModels() []string {
	out := make([]string, len(supportedModels))
	copy(out, supportedModels)
	return out
}

func IsSupportedModel(model string) bool {
	for _, m := range supportedModels {
		if m == model {
			return true
		}
	}
	return false
}

func Levels() []string {
	return []string{LevelBeginner, LevelExpert}
}

// SystemPrompt returns the instruction for the audience level
func SystemPrompt(level string) (string, bool) {
	p, ok := systemPrompts[level]
	return p, ok
}

// UserPrompt wraps the code unchanged
func UserPrompt(code string) string {
	return userPromptPrefix + code
}
