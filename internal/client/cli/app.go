package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
	"github.com/dmitrijs2005/gophtasks/internal/client/config"
	"github.com/dmitrijs2005/gophtasks/internal/client/session"
	"github.com/dmitrijs2005/gophtasks/internal/client/tasksync"
	"github.com/dmitrijs2005/gophtasks/internal/client/view"
	"github.com/dmitrijs2005/gophtasks/internal/filex"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

type App struct {
	remote   client.Client
	sessions *session.Manager
	tasks    *tasksync.Synchronizer
	logger   logging.Logger
	timeout  time.Duration
	closers  []io.Closer

	filter view.Filter
	shown  []models.Task

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session database and connects to the server named in c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	policy, err := tasksync.ParseRollbackPolicy(c.RollbackPolicy)
	if err != nil {
		return nil, err
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	dbPath, err := filex.EnsureParentDir(c.SessionDBPath)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	remote, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(remote, session.NewSQLiteStore(db), policy, logger, os.Stdin, os.Stdout)
	app.timeout = c.RequestTimeout
	app.closers = []io.Closer{remote, db}
	return app, nil
}

func newApp(remote client.Client, store session.Store, policy tasksync.RollbackPolicy, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		remote:   remote,
		sessions: session.NewManager(remote, store, logger),
		tasks:    tasksync.New(remote, policy, logger),
		logger:   logger.With("module", "cli"),
		filter:   view.All,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run restores the previous session and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	a.println("Welcome to GophTasks (type 'help' for commands)")
	a.checkServer(ctx)
	a.restore(ctx)
	a.runREPL(ctx)
}

func (a *App) close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error(ctx, "close", "error", err)
		}
	}
}

// call bounds a single remote round trip.
func (a *App) call(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *App) checkServer(ctx context.Context) {
	cctx, cancel := a.call(ctx)
	defer cancel()
	if err := a.remote.Ping(cctx); err != nil {
		a.println("Server is unreachable; commands will fail until it is back.")
		return
	}
	a.println("Server is online.")
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current() != nil
}

func (a *App) getStatus() string {
	if s := a.sessions.Current(); s != nil {
		return fmt.Sprintf("(%s) ", s.User.Username)
	}
	return ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
