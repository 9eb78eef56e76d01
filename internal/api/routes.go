package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/vinayw02/StepQuest/internal/handler"
	"github.com/vinayw02/StepQuest/internal/middleware"
	"github.com/vinayw02/StepQuest/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/{id}/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	// Steps
	authenticatedRoutes.HandleFunc("/steps", handler.SaveSteps).Methods(http.MethodPost)
	r.HandleFunc("/users/{userId}/steps", handler.GetStepHistory).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/recap", handler.GetRecap).Methods(http.MethodGet)

	// Leaderboard global
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{userId}", handler.GetUserRank).Methods(http.MethodGet)

	// Friends
	authenticatedRoutes.HandleFunc("/friends/{friendId}", handler.AddFriend).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/friends/{friendId}", handler.RemoveFriend).Methods(http.MethodDelete)
	r.HandleFunc("/users/{userId}/friends", handler.GetFriends).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/friends/leaderboard", handler.GetFriendsLeaderboard).Methods(http.MethodGet)

	// Groups
	r.HandleFunc("/groups", handler.GetGroups).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id}", handler.GetGroupById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/groups", handler.CreateGroup).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/groups/{id}/join", handler.JoinGroup).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/groups/{id}/leave", handler.LeaveGroup).Methods(http.MethodDelete)
	r.HandleFunc("/groups/{groupId}/leaderboard", handler.GetGroupLeaderboard).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
