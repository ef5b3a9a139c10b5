package app

import (
	"net/http"

	"github.com/choretracker/choretracker/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Authentication
	r.HandleFunc("/api/auth/token", deps.AuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/token", deps.AuthHandler.Logout).Methods("DELETE")

	// User management
	r.HandleFunc("/api/users", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/users", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/users/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/users/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/users/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Children
	r.HandleFunc("/api/children", deps.ChildHandler.CreateChild).Methods("POST")
	r.HandleFunc("/api/children", deps.ChildHandler.GetChildren).Methods("GET")
	r.HandleFunc("/api/children/{childId}", deps.ChildHandler.GetChild).Methods("GET")
	r.HandleFunc("/api/children/{childId}", deps.ChildHandler.DeleteChild).Methods("DELETE")

	// Chore templates
	r.HandleFunc("/api/chores", deps.ChoreHandler.CreateChore).Methods("POST")
	r.HandleFunc("/api/chores", deps.ChoreHandler.GetChores).Methods("GET")
	r.HandleFunc("/api/chores/{choreId}", deps.ChoreHandler.GetChore).Methods("GET")
	r.HandleFunc("/api/chores/{choreId}", deps.ChoreHandler.DeleteChore).Methods("DELETE")

	// Weekly assignments
	r.HandleFunc("/api/weekly-assignments", deps.AssignmentHandler.GenerateAssignments).Methods("POST")
	r.HandleFunc("/api/weekly-assignments/{childId}", deps.AssignmentHandler.GetWeeklyAssignments).Methods("GET")
	r.HandleFunc("/api/assignments/{assignmentId}/complete", deps.AssignmentHandler.CompleteAssignment).Methods("PUT")
	r.HandleFunc("/api/assignments/history/{childId}", deps.AssignmentHandler.GetAssignmentHistory).Methods("GET")
	r.HandleFunc("/api/assignments/{assignmentId}", deps.AssignmentHandler.DeleteAssignment).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats/weekly/{childId}", deps.StatsHandler.GetWeeklySummary).Methods("GET")
	r.HandleFunc("/api/stats/history/{childId}/csv", deps.StatsHandler.GetHistoryCsv).Methods("GET")

	// Health
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
}
