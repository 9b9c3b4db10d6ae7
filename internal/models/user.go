// Package models defines the types shared by the task-list client and server:
// users, sessions and tasks as they travel over the RemoteStore contract.
package models

// User is an identity record created at registration and never changed.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session binds an opaque bearer token to the user it authenticates.
// Clients compare tokens for equality only; no structure is assumed.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials carry what the user typed into the login/register form.
// Username is ignored for login.
type Credentials struct {
	Username string
	Email    string
	Password string
}
