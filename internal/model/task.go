package model

// TaskID uniquely identifies a task within its owning collection
type TaskID string

// Task represents a single to-do item owned by exactly one account.
// Ownership is by storage-key partitioning; tasks carry no back-reference
// to their account.
//
// Timestamps are epoch milliseconds, matching the persisted layout.
type Task struct {
	ID          TaskID `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"createdAt"`
	CompletedAt int64  `json:"completedAt,omitempty"`
}
