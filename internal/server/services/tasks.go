package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// enter waits out the operation latency and resolves the caller's user id.
func (s *TaskStore) enter(ctx context.Context, base time.Duration, token string) (string, error) {
	if err := s.latency.Wait(ctx, base); err != nil {
		return "", err
	}
	return s.Authorize(ctx, token)
}

func (s *TaskStore) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	userID, err := s.enter(ctx, LatencyList, token)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Tasks().List(ctx, userID)
}

// CreateTask prepends a task with a fresh id to the caller's list.
func (s *TaskStore) CreateTask(ctx context.Context, token, text string) (models.Task, error) {
	userID, err := s.enter(ctx, LatencyCreate, token)
	if err != nil {
		return models.Task{}, err
	}

	text = models.NormalizeText(text)
	if text == "" {
		return models.Task{}, fmt.Errorf("%w: task text is empty", common.ErrValidation)
	}

	return s.repomanager.Tasks().Create(ctx, userID, models.Task{ID: s.newID(), Text: text})
}

func (s *TaskStore) UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error) {
	userID, err := s.enter(ctx, LatencyUpdate, token)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Text != nil {
		text := models.NormalizeText(*patch.Text)
		if text == "" {
			return models.Task{}, fmt.Errorf("%w: task text is empty", common.ErrValidation)
		}
		patch.Text = &text
	}

	return s.repomanager.Tasks().Update(ctx, userID, id, patch)
}

func (s *TaskStore) DeleteTask(ctx context.Context, token, id string) error {
	userID, err := s.enter(ctx, LatencyDelete, token)
	if err != nil {
		return err
	}
	return s.repomanager.Tasks().Delete(ctx, userID, id)
}

// ClearCompleted deletes the listed tasks. Ids that do not exist are ignored.
func (s *TaskStore) ClearCompleted(ctx context.Context, token string, ids []string) error {
	userID, err := s.enter(ctx, LatencyClear, token)
	if err != nil {
		return err
	}

	n, err := s.repomanager.Tasks().DeleteMany(ctx, userID, ids)
	if err != nil {
		return err
	}

	s.logger.Debug(ctx, "completed tasks cleared", "user_id", userID, "requested", len(ids), "deleted", n)
	return nil
}
