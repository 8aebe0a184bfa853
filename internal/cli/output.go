package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case Task:
		o.printTask(v)
	case []Task:
		o.printTaskList(v)
	case TaskStats:
		o.printTaskStats(v)
	case []TrendDay:
		o.printTrend(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// Task response type
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"created_at"`
	CompletedAt int64  `json:"completed_at,omitempty"`
}

// TaskStats response type
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"`
}

// TrendDay response type
type TrendDay struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.Name, a.ID)
	fmt.Printf("Email: %s\n", a.Email)
	if a.ProfileImage != "" {
		fmt.Printf("Profile Image: %s\n", a.ProfileImage)
	}
}

func (o *Output) printTask(t Task) {
	fmt.Printf("Task: %s\n", t.ID)
	fmt.Printf("Text: %s\n", t.Text)
	fmt.Printf("Completed: %v\n", t.Completed)
	fmt.Printf("Created: %s\n", formatMillis(t.CreatedAt))
	if t.CompletedAt != 0 {
		fmt.Printf("Completed At: %s\n", formatMillis(t.CompletedAt))
	}
}

func (o *Output) printTaskList(tasks []Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return
	}

	fmt.Printf("Tasks (%d):\n", len(tasks))
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %s  %s\n", mark, t.Text, t.ID)
	}
}

func (o *Output) printTaskStats(s TaskStats) {
	fmt.Printf("Total: %d\n", s.Total)
	fmt.Printf("Completed: %d\n", s.Completed)
	fmt.Printf("Pending: %d\n", s.Pending)
	fmt.Printf("Completion Rate: %d%%\n", s.CompletionRate)
}

func (o *Output) printTrend(trend []TrendDay) {
	for _, d := range trend {
		fmt.Printf("%s (%s): %d created, %d completed\n", d.Label, d.Date, d.Created, d.Completed)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(time.RFC3339)
}
