package api

import (
	"net/http"

	"git.sr.ht/~jakintosh/tutor/internal/service"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func toUserResponse(user *service.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Role:     user.Role,
	}
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if ok := a.decodeRequest(&req, w, r); !ok {
			return
		}

		if req.Username == "" || req.Password == "" {
			returnError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		token, user, err := a.service.Login(req.Username, req.Password)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		response := LoginResponse{
			Token: token,
			User:  toUserResponse(user),
		}
		returnJson(&response, w)
	}
}
