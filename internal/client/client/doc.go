// Package client contains the client side of the remote task store.
//
// # Overview
//
// The package provides:
//  1. The remote store contract (see the Client interface): Register, Login,
//     ListTasks, CreateTask, UpdateTask, DeleteTask, ClearCompleted and Ping.
//  2. A concrete gRPC implementation (see GRPCClient) that attaches the
//     session token to each call and maps gRPC status codes back to the
//     sentinel errors of internal/common.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are reported as sentinel errors matched with errors.Is:
// common.ErrInvalidCredentials, common.ErrDuplicateEmail,
// common.ErrDuplicateUsername, common.ErrSessionInvalid,
// common.ErrTaskNotFound, common.ErrValidation, common.ErrTooManyAttempts and,
// for transport failures, common.ErrUnavailable.
//
// # Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and timeouts.
package client
