package tasksync

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// Outcome tells the caller what a command did to the local collection.
type Outcome int

const (
	// Noop: nothing to do, no remote call was made.
	Noop Outcome = iota
	// Committed: the remote store accepted the change.
	Committed
	// RolledBack: the change failed and the pre-command snapshot is back.
	RolledBack
	// Resynced: the change failed and the collection was re-fetched.
	Resynced
	// Discarded: the session changed while the call was in flight.
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Noop:
		return "noop"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	case Resynced:
		return "resynced"
	case Discarded:
		return "discarded"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// RollbackPolicy decides how a failed command is undone when another
// command changed the collection after it was applied.
type RollbackPolicy int

const (
	// Resync re-fetches the collection from the remote store.
	Resync RollbackPolicy = iota
	// Snapshot restores the collection captured before the command, even
	// if that reverts unrelated changes.
	Snapshot
)

func (p RollbackPolicy) String() string {
	if p == Snapshot {
		return "snapshot"
	}
	return "resync"
}

func ParseRollbackPolicy(s string) (RollbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "resync":
		return Resync, nil
	case "snapshot":
		return Snapshot, nil
	}
	return Resync, fmt.Errorf("unknown rollback policy %q", s)
}

type OpKind string

const (
	OpCreate OpKind = "create"
	OpToggle OpKind = "toggle"
	OpEdit   OpKind = "edit"
	OpRemove OpKind = "remove"
	OpClear  OpKind = "clear"
)

// PendingOp is a command whose remote call has not resolved yet. Version
// is the collection version right after the command applied its change.
type PendingOp struct {
	ID      uint64
	Kind    OpKind
	TaskID  string
	Version uint64
}

// Store is the task half of the remote store contract.
type Store interface {
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token, text string) (models.Task, error)
	UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
	ClearCompleted(ctx context.Context, token string, ids []string) error
}
