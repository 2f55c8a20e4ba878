package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(a.withRequestLog)
	r.NotFoundHandler = a.withRequestLog(http.HandlerFunc(notFound))

	r.HandleFunc("/healthz", a.Health()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", a.Login()).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(a.withAuth)
	authed.HandleFunc("/me", a.Me()).Methods("GET")
	authed.HandleFunc("/schedules", a.Schedules()).Methods("GET")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(a.withAuth, a.withAdmin)
	admin.HandleFunc("/users", a.ListUsers()).Methods("GET")
	admin.HandleFunc("/users", a.CreateUser()).Methods("POST")

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	returnError(w, http.StatusNotFound, "Not found")
}
