package tasksync

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
	"github.com/stretchr/testify/require"
)

func newTaskStore(t *testing.T) (*services.TaskStore, *models.Session) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.LatencyScale = 0
	store := services.NewTaskStore(repomanager.NewMemoryRepositoryManager(), cfg, logging.NewDiscardLogger())

	sess, err := store.Register(context.Background(), models.Credentials{
		Username: "model", Email: "model@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	return store, sess
}

// Random runs of successful commands against the real store must leave the
// collection equal to a plain slice model, and equal to the store itself.
func TestMatchesReferenceModel(t *testing.T) {
	store, sess := newTaskStore(t)
	s := New(store, Resync, logging.NewDiscardLogger())
	ctx := context.Background()

	_, err := s.Load(ctx, sess)
	require.NoError(t, err)

	var model []models.Task
	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	for step := 0; step < 300; step++ {
		var desc string
		pick := func() int { return rng.Intn(len(model)) }

		switch op := rng.Intn(6); {
		case op == 0 || len(model) == 0:
			text := fmt.Sprintf("task %d", step)
			desc = "add " + text
			created, outcome, err := s.Add(ctx, text)
			require.NoError(t, err, desc)
			require.Equal(t, Committed, outcome, desc)
			model = append([]models.Task{created}, model...)
		case op == 1:
			i := pick()
			desc = "toggle " + model[i].ID
			_, err := s.Toggle(ctx, model[i].ID)
			require.NoError(t, err, desc)
			model[i].Completed = !model[i].Completed
		case op == 2:
			i := pick()
			text := fmt.Sprintf("edited %d", step)
			desc = "edit " + model[i].ID
			_, err := s.Edit(ctx, model[i].ID, text)
			require.NoError(t, err, desc)
			model[i].Text = text
		case op == 3:
			i := pick()
			desc = "remove " + model[i].ID
			_, err := s.Remove(ctx, model[i].ID)
			require.NoError(t, err, desc)
			model = append(model[:i], model[i+1:]...)
		case op == 4:
			desc = "clear completed"
			_, err := s.ClearCompleted(ctx)
			require.NoError(t, err, desc)
			kept := model[:0]
			for _, m := range model {
				if !m.Completed {
					kept = append(kept, m)
				}
			}
			model = kept
		default:
			desc = "noop edit"
			outcome, err := s.Edit(ctx, "missing", "x")
			require.NoError(t, err, desc)
			require.Equal(t, Noop, outcome)
		}

		require.Equal(t, models.CloneTasks(model), s.Tasks(), "seed %d step %d: %s", seed, step, desc)
	}

	remote, err := store.ListTasks(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, s.Tasks(), remote, "seed %d", seed)
}
