package rpc

import "github.com/dmitrijs2005/gophtasks/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse answers both Register and Login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type ListTasksRequest struct{}

type ListTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Text string `json:"text"`
}

type UpdateTaskRequest struct {
	ID    string           `json:"id"`
	Patch models.TaskPatch `json:"patch"`
}

type TaskResponse struct {
	Task models.Task `json:"task"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type ClearCompletedRequest struct {
	IDs []string `json:"ids"`
}

// SuccessResponse mirrors the {success: true} payload of delete operations.
type SuccessResponse struct {
	Success bool `json:"success"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
