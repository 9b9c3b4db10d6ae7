package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/client/tasksync"
	"github.com/dmitrijs2005/gophtasks/internal/client/view"
)

func (a *App) list(arg string) {
	f := a.filter
	if arg != "" {
		parsed, err := view.ParseFilter(arg)
		if err != nil {
			a.println(err)
			return
		}
		f = parsed
	}
	a.render(f)
}

func (a *App) setFilter(arg string) {
	f, err := view.ParseFilter(arg)
	if err != nil {
		a.println(err)
		return
	}
	a.filter = f
	a.render(f)
}

func (a *App) add(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		a.println("Usage: add <text>")
		return
	}
	cctx, cancel := a.call(ctx)
	_, outcome, err := a.tasks.Add(cctx, text)
	cancel()
	a.settle(ctx, outcome, err)
}

func (a *App) toggle(ctx context.Context, ref string) {
	id, ok := a.resolve(ref)
	if !ok {
		a.println("Usage: toggle <n|id>")
		return
	}
	cctx, cancel := a.call(ctx)
	outcome, err := a.tasks.Toggle(cctx, id)
	cancel()
	a.settle(ctx, outcome, err)
}

func (a *App) edit(ctx context.Context, args string) {
	ref, text, _ := strings.Cut(args, " ")
	id, ok := a.resolve(ref)
	if !ok || strings.TrimSpace(text) == "" {
		a.println("Usage: edit <n|id> <text>")
		return
	}
	cctx, cancel := a.call(ctx)
	outcome, err := a.tasks.Edit(cctx, id, text)
	cancel()
	a.settle(ctx, outcome, err)
}

func (a *App) remove(ctx context.Context, ref string) {
	id, ok := a.resolve(ref)
	if !ok {
		a.println("Usage: delete <n|id>")
		return
	}
	cctx, cancel := a.call(ctx)
	outcome, err := a.tasks.Remove(cctx, id)
	cancel()
	a.settle(ctx, outcome, err)
}

func (a *App) clearCompleted(ctx context.Context) {
	cctx, cancel := a.call(ctx)
	outcome, err := a.tasks.ClearCompleted(cctx)
	cancel()
	a.settle(ctx, outcome, err)
}

func (a *App) reload(ctx context.Context) {
	if sess := a.sessions.Current(); sess != nil {
		a.load(ctx, sess)
	}
}

// resolve turns a list position from the last rendered list, or a task id,
// into a task id.
func (a *App) resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(a.shown) {
			return "", false
		}
		return a.shown[n-1].ID, true
	}
	return ref, true
}

// settle reports how a command ended and re-renders the list.
func (a *App) settle(ctx context.Context, outcome tasksync.Outcome, err error) {
	if err != nil && a.sessionExpired(ctx, err) {
		return
	}

	switch outcome {
	case tasksync.Noop:
		if err != nil {
			a.println("Error:", err)
		} else {
			a.println("Nothing to do.")
		}
		return
	case tasksync.Discarded:
		return
	case tasksync.RolledBack:
		a.println("Change failed and was undone:", err)
	case tasksync.Resynced:
		a.println("Change failed; list reloaded from server:", err)
	}
	a.render(a.filter)
}

func (a *App) render(f view.Filter) {
	tasks := a.tasks.Tasks()
	a.shown = view.Visible(tasks, f)

	if len(a.shown) == 0 {
		if f == view.All {
			a.println("No tasks.")
		} else {
			a.printf("No %s tasks.\n", f)
		}
	}
	for i, t := range a.shown {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		a.printf("%3d. [%s] %s", i+1, mark, t.Text)
		if a.tasks.IsPending(t.ID) {
			a.printf(" (saving)")
		}
		a.println()
	}

	footer := view.ItemsLeft(view.ActiveCount(tasks)) + " | filter: " + f.String()
	if view.HasCompleted(tasks) {
		footer += " | 'clear' removes completed"
	}
	a.println(footer)
}
