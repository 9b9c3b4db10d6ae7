package tasksync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBoom = errors.New("boom")
	sessA   = &models.Session{Token: "tok-a", User: models.User{ID: "u1", Username: "alice"}}
	sessB   = &models.Session{Token: "tok-b", User: models.User{ID: "u2", Username: "bob"}}
)

func task(id, text string, completed bool) models.Task {
	return models.Task{ID: id, Text: text, Completed: completed}
}

func loaded(t *testing.T, policy RollbackPolicy, tasks ...models.Task) (*Synchronizer, *fakeStore) {
	t.Helper()
	store := newFakeStore(sessA.Token, tasks...)
	s := New(store, policy, logging.NewDiscardLogger())
	_, err := s.Load(context.Background(), sessA)
	require.NoError(t, err)
	return s, store
}

// waitArrived blocks until the fake store reports a held call.
func waitArrived(t *testing.T, store *fakeStore, method string) {
	t.Helper()
	select {
	case got := <-store.arrived:
		require.Equal(t, method, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("%s never reached the store", method)
	}
}

type result struct {
	outcome Outcome
	err     error
}

func TestLoad(t *testing.T) {
	s, _ := loaded(t, Resync, task("1", "a", false), task("2", "b", true))

	assert.True(t, s.Bound())
	assert.Equal(t, []models.Task{task("1", "a", false), task("2", "b", true)}, s.Tasks())
}

func TestLoad_EmptyCollection(t *testing.T) {
	s, _ := loaded(t, Resync)

	tasks := s.Tasks()
	require.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestLoad_NoSession(t *testing.T) {
	s := New(newFakeStore("x"), Resync, logging.NewDiscardLogger())

	_, err := s.Load(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestLoad_InvalidToken(t *testing.T) {
	store := newFakeStore("other")
	s := New(store, Resync, logging.NewDiscardLogger())

	_, err := s.Load(context.Background(), sessA)
	require.ErrorIs(t, err, common.ErrSessionInvalid)
	assert.Empty(t, s.Tasks())
}

func TestCommandsWithoutSession(t *testing.T) {
	s := New(newFakeStore("x"), Resync, logging.NewDiscardLogger())
	ctx := context.Background()

	_, _, err := s.Add(ctx, "a")
	require.ErrorIs(t, err, common.ErrNoSession)
	_, err = s.Toggle(ctx, "1")
	require.ErrorIs(t, err, common.ErrNoSession)
	_, err = s.ClearCompleted(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestMilkScenario(t *testing.T) {
	s, _ := loaded(t, Resync)
	ctx := context.Background()

	milk, outcome, err := s.Add(ctx, "Buy milk")
	require.NoError(t, err)
	require.Equal(t, Committed, outcome)
	require.Equal(t, []models.Task{{ID: milk.ID, Text: "Buy milk"}}, s.Tasks())

	outcome, err = s.Toggle(ctx, milk.ID)
	require.NoError(t, err)
	require.Equal(t, Committed, outcome)
	require.True(t, s.Tasks()[0].Completed)

	outcome, err = s.Edit(ctx, milk.ID, "Buy oat milk")
	require.NoError(t, err)
	require.Equal(t, Committed, outcome)
	require.Equal(t, task(milk.ID, "Buy oat milk", true), s.Tasks()[0])

	outcome, err = s.Remove(ctx, milk.ID)
	require.NoError(t, err)
	require.Equal(t, Committed, outcome)
	require.Empty(t, s.Tasks())
}

func TestAdd_MostRecentFirst(t *testing.T) {
	s, _ := loaded(t, Resync)
	ctx := context.Background()

	a, _, err := s.Add(ctx, "A")
	require.NoError(t, err)
	b, _, err := s.Add(ctx, "B")
	require.NoError(t, err)

	assert.Equal(t, []models.Task{b, a}, s.Tasks())
}

func TestAdd_TrimsAndSkipsEmpty(t *testing.T) {
	s, store := loaded(t, Resync)
	ctx := context.Background()

	_, outcome, err := s.Add(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, Noop, outcome)
	assert.Zero(t, store.callCount("CreateTask"))

	created, _, err := s.Add(ctx, "  walk dog ")
	require.NoError(t, err)
	assert.Equal(t, "walk dog", created.Text)
}

func TestAdd_NotVisibleUntilConfirmed(t *testing.T) {
	s, store := loaded(t, Resync)
	release := store.block("CreateTask")

	done := make(chan models.Task)
	go func() {
		created, _, _ := s.Add(context.Background(), "later")
		done <- created
	}()

	waitArrived(t, store, "CreateTask")
	assert.Empty(t, s.Tasks())
	assert.Equal(t, []PendingOp{{ID: 1, Kind: OpCreate, Version: s.Version()}}, s.Pending())

	release()
	created := <-done
	assert.Equal(t, []models.Task{created}, s.Tasks())
	assert.Empty(t, s.Pending())
}

func TestAdd_Failure(t *testing.T) {
	s, store := loaded(t, Resync, task("1", "a", false))
	store.failOnce("CreateTask", errBoom)

	_, outcome, err := s.Add(context.Background(), "b")
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, RolledBack, outcome)
	assert.Equal(t, []models.Task{task("1", "a", false)}, s.Tasks())
}

func TestNoops(t *testing.T) {
	s, store := loaded(t, Resync, task("1", "a", false))
	ctx := context.Background()
	before := s.Version()

	outcome, err := s.Toggle(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, Noop, outcome)

	outcome, err = s.Edit(ctx, "1", "  ")
	require.NoError(t, err)
	assert.Equal(t, Noop, outcome)

	outcome, err = s.Edit(ctx, "missing", "x")
	require.NoError(t, err)
	assert.Equal(t, Noop, outcome)

	outcome, err = s.Remove(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, Noop, outcome)

	outcome, err = s.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, Noop, outcome)

	assert.Equal(t, before, s.Version())
	assert.Zero(t, store.callCount("UpdateTask")+store.callCount("DeleteTask")+store.callCount("ClearCompleted"))
}

func TestOptimisticStateVisibleWhileInFlight(t *testing.T) {
	s, store := loaded(t, Resync, task("1", "a", false))
	release := store.block("UpdateTask")

	done := make(chan result)
	go func() {
		o, err := s.Toggle(context.Background(), "1")
		done <- result{o, err}
	}()

	waitArrived(t, store, "UpdateTask")
	assert.True(t, s.Tasks()[0].Completed)
	assert.True(t, s.IsPending("1"))
	assert.False(t, s.IsPending("2"))

	release()
	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, Committed, r.outcome)
	assert.False(t, s.IsPending("1"))
	assert.True(t, s.Tasks()[0].Completed)
}

func TestRollbackRestoresExactSnapshot(t *testing.T) {
	initial := []models.Task{task("1", "a", false), task("2", "b", true), task("3", "c", false)}

	tests := []struct {
		name   string
		method string
		run    func(s *Synchronizer) (Outcome, error)
	}{
		{"toggle", "UpdateTask", func(s *Synchronizer) (Outcome, error) { return s.Toggle(context.Background(), "2") }},
		{"edit", "UpdateTask", func(s *Synchronizer) (Outcome, error) { return s.Edit(context.Background(), "1", "changed") }},
		{"remove middle", "DeleteTask", func(s *Synchronizer) (Outcome, error) { return s.Remove(context.Background(), "2") }},
		{"remove task not found", "DeleteTask", func(s *Synchronizer) (Outcome, error) { return s.Remove(context.Background(), "3") }},
	}
	for _, policy := range []RollbackPolicy{Resync, Snapshot} {
		for _, tt := range tests {
			t.Run(policy.String()+"/"+tt.name, func(t *testing.T) {
				s, store := loaded(t, policy, initial...)
				store.failOnce(tt.method, common.ErrTaskNotFound)

				outcome, err := tt.run(s)
				require.ErrorIs(t, err, common.ErrTaskNotFound)
				assert.Equal(t, RolledBack, outcome)
				assert.Equal(t, initial, s.Tasks())
				assert.Empty(t, s.Pending())
				assert.Zero(t, store.callCount("ListTasks")-1, "rollback must not refetch")
			})
		}
	}
}

func TestClearCompleted(t *testing.T) {
	s, store := loaded(t, Resync, task("1", "a", true), task("2", "b", false), task("3", "c", true))

	outcome, err := s.ClearCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Committed, outcome)
	assert.Equal(t, []models.Task{task("2", "b", false)}, s.Tasks())
	assert.Equal(t, s.Tasks(), store.snapshot())
}

func TestClearCompleted_FailureResyncs(t *testing.T) {
	for _, policy := range []RollbackPolicy{Resync, Snapshot} {
		t.Run(policy.String(), func(t *testing.T) {
			s, store := loaded(t, policy, task("1", "done", true), task("2", "open", false))

			// The server removed the completed task but the response was lost.
			store.mu.Lock()
			store.tasks = []models.Task{task("2", "open", false), task("9", "from elsewhere", false)}
			store.mu.Unlock()
			store.failOnce("ClearCompleted", common.ErrUnavailable)

			outcome, err := s.ClearCompleted(context.Background())
			require.ErrorIs(t, err, common.ErrUnavailable)
			assert.Equal(t, Resynced, outcome)

			fresh, err := store.ListTasks(context.Background(), sessA.Token)
			require.NoError(t, err)
			assert.Equal(t, fresh, s.Tasks())
			assert.NotEqual(t, []models.Task{task("1", "done", true), task("2", "open", false)}, s.Tasks())
		})
	}
}

func TestClearCompleted_ResyncFetchFails(t *testing.T) {
	initial := []models.Task{task("1", "done", true), task("2", "open", false)}
	s, store := loaded(t, Resync, initial...)
	store.failOnce("ClearCompleted", errBoom)
	release := store.block("ListTasks")

	done := make(chan result)
	go func() {
		o, err := s.ClearCompleted(context.Background())
		done <- result{o, err}
	}()

	waitArrived(t, store, "ListTasks")
	store.failOnce("ListTasks", common.ErrUnavailable)
	release()

	r := <-done
	require.ErrorIs(t, r.err, errBoom)
	require.ErrorIs(t, r.err, common.ErrUnavailable)
	assert.Equal(t, RolledBack, r.outcome)
	assert.Equal(t, initial, s.Tasks())
}

// A toggle fails after an unrelated remove has committed. Resync must keep
// the remove; Snapshot brings the removed task back.
func TestFailureAfterInterveningMutation(t *testing.T) {
	tests := []struct {
		policy  RollbackPolicy
		outcome Outcome
		want    []models.Task
	}{
		{Resync, Resynced, []models.Task{task("1", "a", false)}},
		{Snapshot, RolledBack, []models.Task{task("1", "a", false), task("2", "b", false)}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			s, store := loaded(t, tt.policy, task("1", "a", false), task("2", "b", false))
			release := store.block("UpdateTask")
			store.failOnce("UpdateTask", errBoom)

			done := make(chan result)
			go func() {
				o, err := s.Toggle(context.Background(), "1")
				done <- result{o, err}
			}()
			waitArrived(t, store, "UpdateTask")

			outcome, err := s.Remove(context.Background(), "2")
			require.NoError(t, err)
			require.Equal(t, Committed, outcome)

			release()
			r := <-done
			require.ErrorIs(t, r.err, errBoom)
			assert.Equal(t, tt.outcome, r.outcome)
			assert.Equal(t, tt.want, s.Tasks())
			assert.Empty(t, s.Pending())
		})
	}
}

func TestReset_DiscardsInFlightResponses(t *testing.T) {
	s, store := loaded(t, Resync, task("1", "a", false))
	release := store.block("UpdateTask")
	store.failOnce("UpdateTask", errBoom)

	done := make(chan result)
	go func() {
		o, err := s.Toggle(context.Background(), "1")
		done <- result{o, err}
	}()
	waitArrived(t, store, "UpdateTask")

	s.Reset()
	assert.False(t, s.Bound())
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Pending())

	release()
	r := <-done
	assert.Equal(t, Discarded, r.outcome)
	assert.Empty(t, s.Tasks())
}

func TestNewSession_DiscardsCreateFromPreviousOne(t *testing.T) {
	s, store := loaded(t, Resync)
	release := store.block("CreateTask")

	done := make(chan result)
	go func() {
		_, o, err := s.Add(context.Background(), "for alice")
		done <- result{o, err}
	}()
	waitArrived(t, store, "CreateTask")

	// bob's token is rejected by this store, but binding still happens
	// before the fetch.
	_, err := s.Load(context.Background(), sessB)
	require.ErrorIs(t, err, common.ErrSessionInvalid)

	release()
	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, Discarded, r.outcome)
	assert.Empty(t, s.Tasks())
}

func TestLoad_DiscardedByReset(t *testing.T) {
	store := newFakeStore(sessA.Token, task("1", "a", false))
	s := New(store, Resync, logging.NewDiscardLogger())
	release := store.block("ListTasks")

	done := make(chan error)
	go func() {
		_, err := s.Load(context.Background(), sessA)
		done <- err
	}()
	waitArrived(t, store, "ListTasks")

	s.Reset()
	release()
	require.ErrorIs(t, <-done, ErrDiscarded)
	assert.Empty(t, s.Tasks())
}

func TestLoad_SameTokenKeepsGeneration(t *testing.T) {
	s, store := loaded(t, Resync, task("1", "a", false))
	release := store.block("UpdateTask")

	done := make(chan result)
	go func() {
		o, err := s.Toggle(context.Background(), "1")
		done <- result{o, err}
	}()
	waitArrived(t, store, "UpdateTask")

	_, err := s.Load(context.Background(), sessA)
	require.NoError(t, err)

	release()
	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, Committed, r.outcome)
}

func TestPending_DispatchOrder(t *testing.T) {
	s, store := loaded(t, Resync, task("1", "a", false), task("2", "b", true))
	releaseUpdate := store.block("UpdateTask")
	releaseDelete := store.block("DeleteTask")

	done := make(chan result, 2)
	go func() {
		o, err := s.Edit(context.Background(), "1", "edited")
		done <- result{o, err}
	}()
	waitArrived(t, store, "UpdateTask")
	go func() {
		o, err := s.Remove(context.Background(), "2")
		done <- result{o, err}
	}()
	waitArrived(t, store, "DeleteTask")

	pending := s.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, OpEdit, pending[0].Kind)
	assert.Equal(t, "1", pending[0].TaskID)
	assert.Equal(t, OpRemove, pending[1].Kind)
	assert.Less(t, pending[0].Version, pending[1].Version)

	releaseUpdate()
	releaseDelete()
	<-done
	<-done
	assert.Empty(t, s.Pending())
	assert.Equal(t, []models.Task{task("1", "edited", false)}, s.Tasks())
}

func TestParseRollbackPolicy(t *testing.T) {
	for in, want := range map[string]RollbackPolicy{"": Resync, "resync": Resync, "Snapshot": Snapshot} {
		got, err := ParseRollbackPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseRollbackPolicy("undo")
	require.Error(t, err)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "rolled back", RolledBack.String())
	assert.Equal(t, "outcome(42)", Outcome(42).String())
}
