// Package tasksync keeps the local task collection of one session in step
// with the remote store.
//
// Toggle, Edit, Remove and ClearCompleted are optimistic: the change is
// visible through Tasks before the remote call returns and is undone if the
// call fails. Add waits for the server-assigned id before the task appears.
// The mutex guards local state only and is never held across a remote call,
// so commands may run concurrently; the last response wins.
package tasksync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// ErrDiscarded is returned by Load when the session changed before the
// fetch returned.
var ErrDiscarded = errors.New("response discarded: session changed")

type Synchronizer struct {
	mu     sync.Mutex
	store  Store
	policy RollbackPolicy
	logger logging.Logger

	token      string
	bound      bool
	generation uint64
	version    uint64
	tasks      []models.Task
	pending    map[uint64]PendingOp
	nextOpID   uint64
}

func New(store Store, policy RollbackPolicy, logger logging.Logger) *Synchronizer {
	return &Synchronizer{
		store:   store,
		policy:  policy,
		logger:  logger.With("module", "tasksync"),
		tasks:   []models.Task{},
		pending: make(map[uint64]PendingOp),
	}
}

// dispatch is what a command remembers between applying its change and
// resolving its remote call.
type dispatch struct {
	op         PendingOp
	token      string
	generation uint64
	snapshot   []models.Task
}

// Load binds sess and replaces the collection with the remote one. Binding
// a different token starts a new generation, which discards responses still
// in flight for the previous one.
func (s *Synchronizer) Load(ctx context.Context, sess *models.Session) ([]models.Task, error) {
	if sess == nil || sess.Token == "" {
		return nil, common.ErrNoSession
	}

	s.mu.Lock()
	if !s.bound || s.token != sess.Token {
		s.rebind(sess.Token)
	}
	gen := s.generation
	s.mu.Unlock()

	tasks, err := s.store.ListTasks(ctx, sess.Token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return nil, ErrDiscarded
	}
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	s.tasks = models.CloneTasks(tasks)
	s.version++
	s.logger.Debug(ctx, "collection loaded", "count", len(s.tasks), "version", s.version)
	return models.CloneTasks(s.tasks), nil
}

// Reset drops the session binding and the collection. Responses to calls
// made before Reset are discarded.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebind("")
	s.bound = false
}

func (s *Synchronizer) rebind(token string) {
	s.generation++
	s.version++
	s.token = token
	s.bound = true
	s.tasks = []models.Task{}
	s.pending = make(map[uint64]PendingOp)
}

// Add creates a task and prepends it once the remote store has assigned its
// id. Empty text is a no-op.
func (s *Synchronizer) Add(ctx context.Context, text string) (models.Task, Outcome, error) {
	text = models.NormalizeText(text)
	if text == "" {
		return models.Task{}, Noop, nil
	}

	d, err := s.begin(OpCreate, "", nil)
	if err != nil {
		return models.Task{}, Noop, err
	}

	task, err := s.store.CreateTask(ctx, d.token, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, d.op.ID)

	if s.generation != d.generation {
		return models.Task{}, Discarded, err
	}
	if err != nil {
		s.logger.Warn(ctx, "create failed", "error", err)
		return models.Task{}, RolledBack, err
	}

	if models.IndexOf(s.tasks, task.ID) < 0 {
		s.tasks = append([]models.Task{task}, s.tasks...)
		s.version++
	}
	return task, Committed, nil
}

// Toggle flips the completed flag of the task with the given id.
func (s *Synchronizer) Toggle(ctx context.Context, id string) (Outcome, error) {
	var completed bool
	d, err := s.begin(OpToggle, id, func(tasks []models.Task) ([]models.Task, bool) {
		i := models.IndexOf(tasks, id)
		if i < 0 {
			return tasks, false
		}
		tasks[i].Completed = !tasks[i].Completed
		completed = tasks[i].Completed
		return tasks, true
	})
	if d == nil || err != nil {
		return Noop, err
	}

	_, err = s.store.UpdateTask(ctx, d.token, id, models.TaskPatch{Completed: &completed})
	return s.resolve(ctx, d, err, false)
}

// Edit replaces the text of the task with the given id. Empty text is a
// no-op.
func (s *Synchronizer) Edit(ctx context.Context, id, text string) (Outcome, error) {
	text = models.NormalizeText(text)
	if text == "" {
		return Noop, nil
	}

	d, err := s.begin(OpEdit, id, func(tasks []models.Task) ([]models.Task, bool) {
		i := models.IndexOf(tasks, id)
		if i < 0 {
			return tasks, false
		}
		tasks[i].Text = text
		return tasks, true
	})
	if d == nil || err != nil {
		return Noop, err
	}

	_, err = s.store.UpdateTask(ctx, d.token, id, models.TaskPatch{Text: &text})
	return s.resolve(ctx, d, err, false)
}

// Remove deletes the task with the given id. On failure it comes back at its
// original position.
func (s *Synchronizer) Remove(ctx context.Context, id string) (Outcome, error) {
	d, err := s.begin(OpRemove, id, func(tasks []models.Task) ([]models.Task, bool) {
		i := models.IndexOf(tasks, id)
		if i < 0 {
			return tasks, false
		}
		return append(tasks[:i], tasks[i+1:]...), true
	})
	if d == nil || err != nil {
		return Noop, err
	}

	err = s.store.DeleteTask(ctx, d.token, id)
	return s.resolve(ctx, d, err, false)
}

// ClearCompleted drops every completed task. The remote batch may have
// partly succeeded when it fails, so a failure always resyncs.
func (s *Synchronizer) ClearCompleted(ctx context.Context) (Outcome, error) {
	var ids []string
	d, err := s.begin(OpClear, "", func(tasks []models.Task) ([]models.Task, bool) {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.Completed {
				ids = append(ids, t.ID)
				continue
			}
			kept = append(kept, t)
		}
		return kept, len(ids) > 0
	})
	if d == nil || err != nil {
		return Noop, err
	}

	err = s.store.ClearCompleted(ctx, d.token, ids)
	return s.resolve(ctx, d, err, true)
}

// begin applies change to a copy of the collection and records the command
// as pending. A nil dispatch with a nil error means there was nothing to do.
// A nil change records the command without touching the collection.
func (s *Synchronizer) begin(kind OpKind, taskID string, change func([]models.Task) ([]models.Task, bool)) (*dispatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bound {
		return nil, common.ErrNoSession
	}

	snapshot := models.CloneTasks(s.tasks)
	if change != nil {
		next, changed := change(models.CloneTasks(s.tasks))
		if !changed {
			return nil, nil
		}
		s.tasks = next
		s.version++
	}

	s.nextOpID++
	op := PendingOp{ID: s.nextOpID, Kind: kind, TaskID: taskID, Version: s.version}
	s.pending[op.ID] = op

	return &dispatch{op: op, token: s.token, generation: s.generation, snapshot: snapshot}, nil
}

// resolve settles an optimistic command once its remote call returned.
func (s *Synchronizer) resolve(ctx context.Context, d *dispatch, cause error, alwaysResync bool) (Outcome, error) {
	s.mu.Lock()

	if s.generation != d.generation {
		s.mu.Unlock()
		s.logger.Debug(ctx, "stale response discarded", "op", d.op.Kind, "task_id", d.op.TaskID)
		return Discarded, cause
	}

	if cause == nil {
		delete(s.pending, d.op.ID)
		s.mu.Unlock()
		return Committed, nil
	}

	untouched := s.version == d.op.Version
	if !alwaysResync && (untouched || s.policy == Snapshot) {
		delete(s.pending, d.op.ID)
		s.restore(d.snapshot)
		s.mu.Unlock()
		s.logger.Warn(ctx, "command rolled back", "op", d.op.Kind, "task_id", d.op.TaskID, "error", cause)
		return RolledBack, cause
	}
	s.mu.Unlock()

	return s.resync(ctx, d, cause)
}

func (s *Synchronizer) resync(ctx context.Context, d *dispatch, cause error) (Outcome, error) {
	fresh, err := s.store.ListTasks(ctx, d.token)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, d.op.ID)

	if s.generation != d.generation {
		return Discarded, cause
	}

	if err != nil {
		s.restore(d.snapshot)
		s.logger.Warn(ctx, "resync failed, snapshot restored", "op", d.op.Kind, "error", err)
		return RolledBack, errors.Join(cause, fmt.Errorf("resync: %w", err))
	}

	s.tasks = models.CloneTasks(fresh)
	s.version++
	s.logger.Info(ctx, "collection resynced", "op", d.op.Kind, "count", len(s.tasks), "error", cause)
	return Resynced, cause
}

func (s *Synchronizer) restore(snapshot []models.Task) {
	s.tasks = models.CloneTasks(snapshot)
	s.version++
}

// Tasks returns a copy of the collection as it is now, optimistic changes
// included.
func (s *Synchronizer) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneTasks(s.tasks)
}

// Version increases every time the collection changes.
func (s *Synchronizer) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Pending lists unresolved commands in dispatch order.
func (s *Synchronizer) Pending() []PendingOp {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PendingOp, 0, len(s.pending))
	for _, op := range s.pending {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsPending reports whether a command on the task is still in flight.
func (s *Synchronizer) IsPending(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range s.pending {
		if op.TaskID == taskID {
			return true
		}
	}
	return false
}

// Bound reports whether a session is loaded.
func (s *Synchronizer) Bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}
