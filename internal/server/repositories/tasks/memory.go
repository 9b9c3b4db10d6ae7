package tasks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string][]models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[string][]models.Task)}
}

func (r *MemoryRepository) List(ctx context.Context, userID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.CloneTasks(r.byUser[userID]), nil
}

func (r *MemoryRepository) Create(ctx context.Context, userID string, task models.Task) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byUser[userID]
	next := make([]models.Task, 0, len(list)+1)
	next = append(next, task)
	r.byUser[userID] = append(next, list...)
	return task, nil
}

func (r *MemoryRepository) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byUser[userID]
	i := models.IndexOf(list, id)
	if i < 0 {
		return models.Task{}, common.ErrTaskNotFound
	}
	list[i] = patch.Apply(list[i])
	return list[i], nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byUser[userID]
	i := models.IndexOf(list, id)
	if i < 0 {
		return common.ErrTaskNotFound
	}
	r.byUser[userID] = append(list[:i:i], list[i+1:]...)
	return nil
}

func (r *MemoryRepository) DeleteMany(ctx context.Context, userID string, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	list := r.byUser[userID]
	kept := make([]models.Task, 0, len(list))
	for _, t := range list {
		if _, ok := drop[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	r.byUser[userID] = kept
	return int64(len(list) - len(kept)), nil
}
