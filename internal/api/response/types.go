package response

import (
	"github.com/taskglow/taskglow/internal/model"
)

// Account represents an account in API responses. The password secret is
// never exposed.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:           string(a.ID),
		Name:         a.Name,
		Email:        a.Email,
		ProfileImage: a.ProfileImage,
	}
}

// Task represents a task in API responses
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"created_at"`
	CompletedAt int64  `json:"completed_at,omitempty"`
}

// TaskFromModel converts a model.Task to a response Task
func TaskFromModel(t model.Task) Task {
	return Task{
		ID:          string(t.ID),
		Text:        t.Text,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

// TasksFromModel converts a task slice
func TasksFromModel(tasks []model.Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskFromModel(t))
	}
	return out
}

// TaskStats represents aggregate counts in API responses
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"`
}

// TaskStatsFromModel converts model.TaskStats
func TaskStatsFromModel(s model.TaskStats) TaskStats {
	return TaskStats{
		Total:          s.Total,
		Completed:      s.Completed,
		Pending:        s.Pending,
		CompletionRate: s.CompletionRate,
	}
}

// TrendDay represents one weekly-trend bucket in API responses
type TrendDay struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// TrendFromModel converts a trend slice
func TrendFromModel(trend []model.TrendDay) []TrendDay {
	out := make([]TrendDay, 0, len(trend))
	for _, d := range trend {
		out = append(out, TrendDay(d))
	}
	return out
}
