package cli

import (
	"context"
)

// runREPL reads one command per line and dispatches it until the user types
// exit or quit, or input ends. Command errors are reported to the user and
// never stop the loop.
func (a *App) runREPL(ctx context.Context) {
	for {
		a.printf("gophtasks %s> ", a.getStatus())
		line, err := readLine(a.reader)
		if err != nil {
			a.println()
			return
		}
		if !a.execute(ctx, line) {
			return
		}
	}
}

// execute runs one command line and reports whether the REPL should go on.
func (a *App) execute(ctx context.Context, line string) bool {
	cmd, rest := splitCommand(line)
	if cmd == "" {
		return true
	}

	switch cmd {
	case "exit", "quit":
		a.println("Bye!")
		return false
	case "help":
		a.help()
		return true
	case "status":
		a.checkServer(ctx)
		return true
	case "register":
		a.register(ctx)
		return true
	case "login":
		a.login(ctx)
		return true
	}

	if !a.isLoggedIn() {
		a.println("Please log in or register first (type 'help' for commands).")
		return true
	}

	switch cmd {
	case "logout":
		a.logout(ctx)
	case "l", "list":
		a.list(rest)
	case "filter":
		a.setFilter(rest)
	case "add":
		a.add(ctx, rest)
	case "toggle":
		a.toggle(ctx, rest)
	case "edit":
		a.edit(ctx, rest)
	case "delete", "rm":
		a.remove(ctx, rest)
	case "clear":
		a.clearCompleted(ctx)
	case "reload":
		a.reload(ctx)
	default:
		a.println("Unknown command:", cmd)
	}
	return true
}

func (a *App) help() {
	if a.isLoggedIn() {
		a.println("Available commands: (l)ist [all|active|completed], filter <f>, add <text>, toggle <n|id>,")
		a.println("  edit <n|id> <text>, delete <n|id>, clear, reload, status, logout, exit")
		return
	}
	a.println("Available commands: register, login, status, exit")
}
