package model

// TaskStats holds aggregate counts over one account's task collection
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"` // rounded percentage, 0 when Total is 0
}

// TrendDay holds per-day activity counts for the weekly trend view
type TrendDay struct {
	Date      string `json:"date"`  // local calendar date, YYYY-MM-DD
	Label     string `json:"label"` // short weekday name
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}
