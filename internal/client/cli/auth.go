package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophtasks/internal/client/session"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) register(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return
	}
	a.authenticate(ctx, session.Register, username)
}

func (a *App) login(ctx context.Context) {
	a.authenticate(ctx, session.Login, "")
}

func (a *App) authenticate(ctx context.Context, mode session.Mode, username string) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return
	}
	password, err := getPassword(a.out)
	if err != nil {
		a.println("Error:", err)
		return
	}

	cctx, cancel := a.call(ctx)
	sess, err := a.sessions.Authenticate(cctx, mode, models.Credentials{Username: username, Email: email, Password: password})
	cancel()
	if err != nil {
		a.println(authMessage(mode, err))
		return
	}

	a.printf("Logged in as %s.\n", sess.User.Username)
	a.load(ctx, sess)
}

func authMessage(mode session.Mode, err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrDuplicateEmail):
		return "This email is already registered."
	case errors.Is(err, common.ErrDuplicateUsername):
		return "This username is already taken."
	case errors.Is(err, common.ErrTooManyAttempts):
		return "Too many login attempts, try again later."
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	case errors.Is(err, common.ErrUnavailable):
		return "Server is unreachable."
	}
	return mode.String() + " failed: " + err.Error()
}

// restore brings back the session stored by an earlier run and loads its
// tasks. A token the server no longer accepts ends in a forced logout.
func (a *App) restore(ctx context.Context) {
	sess, err := a.sessions.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "restore session", "error", err)
		return
	}
	if sess == nil {
		a.println("Not logged in. Use 'login' or 'register'.")
		return
	}
	a.printf("Welcome back, %s.\n", sess.User.Username)
	a.load(ctx, sess)
}

func (a *App) load(ctx context.Context, sess *models.Session) {
	cctx, cancel := a.call(ctx)
	_, err := a.tasks.Load(cctx, sess)
	cancel()
	if err != nil {
		if a.sessionExpired(ctx, err) {
			return
		}
		a.println("Could not load tasks:", err)
		return
	}
	a.render(a.filter)
}

func (a *App) logout(ctx context.Context) {
	a.tasks.Reset()
	if err := a.sessions.Clear(ctx); err != nil {
		a.println("Error:", err)
		return
	}
	a.shown = nil
	a.println("Logged out.")
}

// sessionExpired performs the forced logout when err says the token is no
// longer accepted.
func (a *App) sessionExpired(ctx context.Context, err error) bool {
	if !errors.Is(err, common.ErrSessionInvalid) {
		return false
	}
	a.logger.Warn(ctx, "session rejected by server, logging out")
	a.tasks.Reset()
	if clearErr := a.sessions.Clear(ctx); clearErr != nil {
		a.logger.Error(ctx, "clear session", "error", clearErr)
	}
	a.shown = nil
	a.println("Your session has expired. Please log in again.")
	return true
}
