package tasksync

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// fakeStore is a single-user remote store. Calls can be made to fail once
// or to block until the test releases them.
type fakeStore struct {
	mu      sync.Mutex
	token   string
	tasks   []models.Task
	nextID  int
	fail    map[string]error
	hold    map[string]chan struct{}
	arrived chan string
	calls   map[string]int
}

func newFakeStore(token string, tasks ...models.Task) *fakeStore {
	return &fakeStore{
		token:   token,
		tasks:   models.CloneTasks(tasks),
		fail:    map[string]error{},
		hold:    map[string]chan struct{}{},
		arrived: make(chan string, 16),
		calls:   map[string]int{},
	}
}

// failOnce makes the next call to method return err.
func (f *fakeStore) failOnce(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = err
}

// block makes the next call to method wait until the returned func is
// called. The call is announced on f.arrived once it is waiting.
func (f *fakeStore) block(method string) func() {
	ch := make(chan struct{})
	f.mu.Lock()
	f.hold[method] = ch
	f.mu.Unlock()
	return func() { close(ch) }
}

func (f *fakeStore) enter(method, token string) error {
	f.mu.Lock()
	f.calls[method]++
	ch := f.hold[method]
	delete(f.hold, method)
	f.mu.Unlock()

	if ch != nil {
		f.arrived <- method
		<-ch
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[method]; ok {
		delete(f.fail, method)
		return err
	}
	if token != f.token {
		return common.ErrSessionInvalid
	}
	return nil
}

func (f *fakeStore) snapshot() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CloneTasks(f.tasks)
}

func (f *fakeStore) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStore) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	if err := f.enter("ListTasks", token); err != nil {
		return nil, err
	}
	return f.snapshot(), nil
}

func (f *fakeStore) CreateTask(ctx context.Context, token, text string) (models.Task, error) {
	if err := f.enter("CreateTask", token); err != nil {
		return models.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := models.Task{ID: fmt.Sprintf("t%d", f.nextID), Text: text}
	f.tasks = append([]models.Task{t}, f.tasks...)
	return t, nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error) {
	if err := f.enter("UpdateTask", token); err != nil {
		return models.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := models.IndexOf(f.tasks, id)
	if i < 0 {
		return models.Task{}, common.ErrTaskNotFound
	}
	f.tasks[i] = patch.Apply(f.tasks[i])
	return f.tasks[i], nil
}

func (f *fakeStore) DeleteTask(ctx context.Context, token, id string) error {
	if err := f.enter("DeleteTask", token); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := models.IndexOf(f.tasks, id)
	if i < 0 {
		return common.ErrTaskNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

func (f *fakeStore) ClearCompleted(ctx context.Context, token string, ids []string) error {
	if err := f.enter("ClearCompleted", token); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}
