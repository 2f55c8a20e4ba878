package client

import "git.sr.ht/~jakintosh/tutor/internal/api"

type (
	LoginRequest      = api.LoginRequest
	LoginResponse     = api.LoginResponse
	UserResponse      = api.UserResponse
	CreateUserRequest = api.CreateUserRequest
	ScheduleResponse  = api.ScheduleResponse
	ErrorResponse     = api.ErrorResponse
)
