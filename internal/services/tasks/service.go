package tasks

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/taskglow/taskglow/internal/dependencies/clock"
	"github.com/taskglow/taskglow/internal/dependencies/identity"
	"github.com/taskglow/taskglow/internal/model"
	"github.com/taskglow/taskglow/internal/storage"
)

// trendDays is the window of the weekly trend view, trailing and including today
const trendDays = 7

// Service manages per-account task collections. Every operation is scoped to
// one account id; collections of different accounts live under different
// storage keys and are never visible to each other.
//
// Mutations persist the whole collection per write. Editing, deleting, or
// toggling an unknown task id is a silent no-op: the caller only ever holds
// ids it just read.
type Service struct {
	storage storage.Store
	clock   clock.Clock
	idgen   identity.Generator
	logger  *slog.Logger
}

// ListOptions controls the List read view
type ListOptions struct {
	// Search filters tasks by case-insensitive substring match on their text
	Search string
}

// New creates a new tasks service
func New(store storage.Store, clk clock.Clock, idgen identity.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		idgen:   idgen,
		logger:  logger,
	}
}

// Add creates a new task at the front of the collection. Text is trimmed;
// empty or whitespace-only text is rejected with ErrEmptyTaskText.
func (s *Service) Add(ctx context.Context, owner model.AccountID, text string) (*model.Task, error) {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyTaskText
	}

	now := s.clock.Now()
	task := model.Task{
		ID:        s.idgen.TaskID(now),
		Text:      text,
		Completed: false,
		CreatedAt: now.UnixMilli(),
	}

	if err := s.save(ctx, owner, append([]model.Task{task}, tasks...)); err != nil {
		return nil, err
	}

	s.logger.Info("task added",
		slog.String("account_id", string(owner)),
		slog.String("task_id", string(task.ID)),
	)
	return &task, nil
}

// Toggle flips a task's completion state. Completing stamps CompletedAt;
// un-completing clears it, since the weekly trend counts completions by that
// field.
func (s *Service) Toggle(ctx context.Context, owner model.AccountID, id model.TaskID) error {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Completed = !tasks[i].Completed
		if tasks[i].Completed {
			tasks[i].CompletedAt = s.clock.Now().UnixMilli()
		} else {
			tasks[i].CompletedAt = 0
		}
		return s.save(ctx, owner, tasks)
	}

	return nil
}

// Edit replaces a task's text in place. Empty replacement text is rejected
// with ErrEmptyTaskText.
func (s *Service) Edit(ctx context.Context, owner model.AccountID, id model.TaskID, text string) error {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return model.ErrEmptyTaskText
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Text = text
		return s.save(ctx, owner, tasks)
	}

	return nil
}

// Delete removes a task from the collection.
func (s *Service) Delete(ctx context.Context, owner model.AccountID, id model.TaskID) error {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return err
	}

	kept := tasks[:0]
	for _, task := range tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	if len(kept) == len(tasks) {
		return nil
	}

	return s.save(ctx, owner, kept)
}

// ToggleAll drives the "mark all / unmark all" action: if every task is
// complete, all become pending; otherwise all become complete. One batch
// write either way.
func (s *Service) ToggleAll(ctx context.Context, owner model.AccountID) error {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	target := !allComplete(tasks)
	now := s.clock.Now().UnixMilli()
	for i := range tasks {
		if tasks[i].Completed == target {
			continue
		}
		tasks[i].Completed = target
		if target {
			tasks[i].CompletedAt = now
		} else {
			tasks[i].CompletedAt = 0
		}
	}

	return s.save(ctx, owner, tasks)
}

// List returns the collection in display order: incomplete tasks first, then
// completed, each group by descending creation time. Options may narrow the
// result by a search term.
func (s *Service) List(ctx context.Context, owner model.AccountID, opts ListOptions) ([]model.Task, error) {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		filtered := make([]model.Task, 0, len(tasks))
		for _, task := range tasks {
			if strings.Contains(strings.ToLower(task.Text), needle) {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return tasks[i].CreatedAt > tasks[j].CreatedAt
	})

	return tasks, nil
}

// Stats returns aggregate counts over the collection. The completion rate is
// a rounded percentage, 0 when the collection is empty.
func (s *Service) Stats(ctx context.Context, owner model.AccountID) (model.TaskStats, error) {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return model.TaskStats{}, err
	}

	stats := model.TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	return stats, nil
}

// WeeklyTrend returns created and completed counts for each of the trailing
// seven local calendar days, oldest first, today last. Bucketing compares
// year/month/day only, independent of time of day.
func (s *Service) WeeklyTrend(ctx context.Context, owner model.AccountID) ([]model.TrendDay, error) {
	tasks, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	trend := make([]model.TrendDay, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)

		entry := model.TrendDay{
			Date:  day.Format("2006-01-02"),
			Label: day.Format("Mon"),
		}
		for _, task := range tasks {
			if sameDay(time.UnixMilli(task.CreatedAt).In(day.Location()), day) {
				entry.Created++
			}
			if task.Completed && task.CompletedAt != 0 &&
				sameDay(time.UnixMilli(task.CompletedAt).In(day.Location()), day) {
				entry.Completed++
			}
		}
		trend = append(trend, entry)
	}

	return trend, nil
}

// load reads the owner's collection; an absent or corrupt key is an empty
// collection. An empty owner id means no active session scoped the call.
func (s *Service) load(ctx context.Context, owner model.AccountID) ([]model.Task, error) {
	if owner == "" {
		return nil, model.ErrNoAccountID
	}

	var tasks []model.Task
	if _, err := s.storage.Get(ctx, storage.TasksKey(owner), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Service) save(ctx context.Context, owner model.AccountID, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return s.storage.Set(ctx, storage.TasksKey(owner), tasks)
}

func allComplete(tasks []model.Task) bool {
	for _, task := range tasks {
		if !task.Completed {
			return false
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
