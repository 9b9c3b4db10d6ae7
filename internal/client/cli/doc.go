// Package cli provides the interactive GophTasks terminal client.
//
// It wires configuration, the local session database, the gRPC remote store,
// the session manager and the task synchronizer behind a small REPL. On start
// the stored session (if any) is restored and its tasks are loaded.
//
// Commands:
//   - register / login / logout
//   - list [all|active|completed], filter <f>
//   - add <text>, toggle <n|id>, edit <n|id> <text>, delete <n|id>
//   - clear (remove completed tasks), reload
//   - status, help, exit | quit
//
// <n> is the position of a task in the list printed last.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
