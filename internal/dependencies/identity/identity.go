package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskglow/taskglow/internal/dependencies/random"
	"github.com/taskglow/taskglow/internal/model"
)

const (
	// taskIDSuffixLength is the length of the random suffix on task ids
	taskIDSuffixLength = 6
	// taskIDAlphabet is the characters used in task id suffixes
	taskIDAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"
)

// Generator produces unique identifiers. Account ids must be unique across
// the global account collection; task ids only within one account's
// collection.
type Generator interface {
	AccountID() model.AccountID
	TaskID(now time.Time) model.TaskID
}

// TokenGenerator implements Generator with UUIDs for accounts and time-based
// tokens for tasks
type TokenGenerator struct {
	random random.Random
}

// New creates a new TokenGenerator
func New(rnd random.Random) *TokenGenerator {
	return &TokenGenerator{random: rnd}
}

// Ensure TokenGenerator implements the interface
var _ Generator = (*TokenGenerator)(nil)

// AccountID returns a new globally unique account id
func (g *TokenGenerator) AccountID() model.AccountID {
	return model.AccountID(uuid.NewString())
}

// TaskID returns a new task id. The epoch-millis prefix keeps ids roughly
// ordered; the random suffix disambiguates tasks created within the same
// millisecond.
func (g *TokenGenerator) TaskID(now time.Time) model.TaskID {
	suffix := g.random.String(taskIDSuffixLength, taskIDAlphabet)
	return model.TaskID(fmt.Sprintf("%d-%s", now.UnixMilli(), suffix))
}
