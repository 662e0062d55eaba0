package handler

import (
	"github.com/Dan9191/blog-service/internal/auth"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires all routes. Public routes are reachable without a
// token; everything under the auth subrouter requires a resolvable
// bearer token.
func NewRouter(h *Handler, resolver *auth.Resolver) *mux.Router {
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	r.HandleFunc("/posts", h.ListPosts).Methods("GET")
	r.HandleFunc("/feed.xml", h.Feed).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(resolver))
	authRouter.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")
	authRouter.HandleFunc("/posts", h.CreatePost).Methods("POST")
	authRouter.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	authRouter.HandleFunc("/posts/{id}", h.UpdatePost).Methods("PUT")
	authRouter.HandleFunc("/posts/{id}", h.DeletePost).Methods("DELETE")
	authRouter.HandleFunc("/vote", h.Vote).Methods("POST")
	return r
}
