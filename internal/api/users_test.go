package api_test

import (
	"net/http"
	"testing"

	"git.sr.ht/~jakintosh/tutor/internal/api"
	"git.sr.ht/~jakintosh/tutor/internal/service"
	"git.sr.ht/~jakintosh/tutor/internal/testutil"
)

func TestMe(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	user, header := env.LoginTestUser(t, "alice", service.RoleStudent)

	// claims of the caller are returned
	var claims map[string]any
	result := testutil.Get(env.Router, "/api/me", &claims, header)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if claims["id"] != user.ID {
		t.Errorf("id = %v, want %s", claims["id"], user.ID)
	}
	if claims["role"] != service.RoleStudent {
		t.Errorf("role = %v, want student", claims["role"])
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Errorf("exp should be numeric, got %T", claims["exp"])
	}
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	_, admin := env.LoginTestUser(t, "root", service.RoleAdmin)
	env.RegisterTestUser(t, "carol", "password", service.RoleTeacher)
	env.RegisterTestUser(t, "bob", "password", service.RoleStudent)

	var users []map[string]any
	result := testutil.Get(env.Router, "/api/admin/users", &users, admin)
	testutil.ExpectStatus(t, http.StatusOK, result)

	// ordered by name without password material
	wantNames := []string{"bob", "carol", "root"}
	if len(users) != len(wantNames) {
		t.Fatalf("got %d users, want %d", len(users), len(wantNames))
	}
	for i, name := range wantNames {
		if users[i]["name"] != name {
			t.Errorf("users[%d].name = %v, want %s", i, users[i]["name"], name)
		}
		for _, key := range []string{"password", "password_hash", "PasswordHash"} {
			if _, ok := users[i][key]; ok {
				t.Errorf("users[%d] exposes %s", i, key)
			}
		}
	}
}

func TestCreateUser(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	_, admin := env.LoginTestUser(t, "root", service.RoleAdmin)

	// admin creates a student who can then log in
	body := `{"name":"Dana","username":"dana","password":"hunter22","role":"student"}`
	var created api.UserResponse
	result := testutil.PostJSON(env.Router, "/api/admin/users", body, &created, admin)
	testutil.ExpectStatus(t, http.StatusCreated, result)
	if created.ID == "" || created.Username != "dana" || created.Role != service.RoleStudent {
		t.Errorf("unexpected user: %+v", created)
	}

	var login api.LoginResponse
	result = testutil.PostJSON(env.Router, "/api/login", `{"username":"dana","password":"hunter22"}`, &login)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if login.User.ID != created.ID {
		t.Errorf("login user id = %q, want %q", login.User.ID, created.ID)
	}
}

func TestCreateUser_Errors(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	_, admin := env.LoginTestUser(t, "root", service.RoleAdmin)
	env.RegisterTestUser(t, "alice", "password", service.RoleStudent)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"duplicate", `{"username":"alice","password":"x"}`, http.StatusConflict},
		{"no password", `{"username":"erin"}`, http.StatusBadRequest},
		{"bad role", `{"username":"erin","password":"x","role":"janitor"}`, http.StatusBadRequest},
		{"bad json", `[`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := testutil.PostJSON(env.Router, "/api/admin/users", tc.body, nil, admin)
			testutil.ExpectStatus(t, tc.status, result)
		})
	}
}
