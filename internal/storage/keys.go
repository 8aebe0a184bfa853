package storage

import "github.com/taskglow/taskglow/internal/model"

// Logical key layout. Task collections are partitioned per account by key;
// that partitioning is the only ownership mechanism, so these helpers are the
// single place keys are built.
const (
	// AccountsKey holds the ordered collection of all registered accounts
	AccountsKey = "users"

	// SessionKey holds the current session's account snapshot
	SessionKey = "currentUser"
)

// TasksKey returns the key holding the task collection for one account
func TasksKey(id model.AccountID) string {
	return "tasks_" + string(id)
}
