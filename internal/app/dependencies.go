package app

import (
	"time"

	"github.com/choretracker/choretracker/internal/config"
	"github.com/choretracker/choretracker/internal/utils"
	"github.com/choretracker/choretracker/pkg/assignment"
	"github.com/choretracker/choretracker/pkg/auth"
	"github.com/choretracker/choretracker/pkg/child"
	"github.com/choretracker/choretracker/pkg/chore"
	"github.com/choretracker/choretracker/pkg/stats"
	"github.com/choretracker/choretracker/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserRepo    user.Repo
	UserService user.Service
	UserHandler *user.Handler

	AuthRepo    auth.Repository
	AuthService auth.Service
	AuthHandler *auth.Handler

	ChildRepo    child.Repository
	ChildService child.Service
	ChildHandler *child.Handler

	ChoreRepo    chore.Repository
	ChoreService chore.Service
	ChoreHandler *chore.Handler

	AssignmentRepo    assignment.Repository
	AssignmentService assignment.Service
	AssignmentHandler *assignment.Handler

	StatsService       stats.Service
	CsvHistoryRenderer *stats.CsvHistoryRendererImpl
	StatsHandler       *stats.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserRepo = user.NewUserRepo(db)
	deps.UserService = user.NewUserService(deps.UserRepo)
	deps.UserHandler = user.NewHandler(deps.UserService)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	deps.AuthRepo = auth.NewRepository(db)
	deps.AuthService = auth.NewService(deps.AuthRepo, deps.UserRepo, deps.Clock, tokenTTL)
	deps.AuthHandler = auth.NewHandler(deps.AuthService)

	deps.ChildRepo = child.NewRepository(db)
	deps.ChildService = child.NewService(deps.ChildRepo)
	deps.ChildHandler = child.NewHandler(deps.ChildService)

	deps.ChoreRepo = chore.NewRepository(db)
	deps.ChoreService = chore.NewService(deps.ChoreRepo)
	deps.ChoreHandler = chore.NewHandler(deps.ChoreService)

	deps.AssignmentRepo = assignment.NewRepo(db)
	deps.AssignmentService = assignment.NewService(deps.AssignmentRepo, deps.ChildService, deps.ChoreService, deps.Clock)
	deps.AssignmentHandler = assignment.NewHandler(deps.AssignmentService)

	deps.StatsService = stats.NewService(deps.AssignmentService, deps.ChildService)
	deps.CsvHistoryRenderer = stats.NewCsvHistoryRenderer()
	deps.StatsHandler = stats.NewHandler(deps.StatsService, deps.CsvHistoryRenderer)

	return deps
}
