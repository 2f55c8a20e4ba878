package api

import (
	"net/http"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Me echoes the verified claims of the caller.
func (a *API) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		returnJson(identity(r.Context()).Claims, w)
	}
}

func (a *API) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := a.service.Users(identity(r.Context()))
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		response := make([]UserResponse, 0, len(users))
		for i := range users {
			response = append(response, toUserResponse(&users[i]))
		}
		returnJson(response, w)
	}
}

func (a *API) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if ok := a.decodeRequest(&req, w, r); !ok {
			return
		}

		user, err := a.service.Register(req.Name, req.Username, req.Password, req.Role)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		returnJsonStatus(http.StatusCreated, toUserResponse(user), w)
	}
}
