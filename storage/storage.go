package storage

import (
	"time"

	"github.com/google/uuid"
)

// Entry describes one finished explanation, metadata only:
// neither the code nor the explanation text is kept
type Entry struct {
	ID         string    `bson:"_id" json:"id"`
	Model      string    `bson:"model" json:"model"`
	Level      string    `bson:"level" json:"level"`
	Kind       string    `bson:"kind" json:"kind"` // empty on success
	CodeLength int       `bson:"code_length" json:"code_length"`
	DurationMs int64     `bson:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

func NewEntry(model, level, kind string, codeLength int, took time.Duration) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Model:      model,
		Level:      level,
		Kind:       kind,
		CodeLength: codeLength,
		DurationMs: took.Milliseconds(),
		CreatedAt:  time.Now(),
	}
}

type Journal interface {
	Record(entry Entry) error
	// Recent returns up to limit entries, newest first
	Recent(limit int) ([]Entry, error)
	Close() error
}
