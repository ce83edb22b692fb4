// Copyright (C) 2024 Tim Bastin, l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package api

import (
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
	"github.com/testboard-dev/testboard/internal/auth"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/core/project"
	"github.com/testboard-dev/testboard/internal/core/run"
	"github.com/testboard-dev/testboard/internal/core/suite"
	"github.com/testboard-dev/testboard/internal/core/testcase"
	"github.com/testboard-dev/testboard/internal/core/user"
	"github.com/testboard-dev/testboard/internal/database/models"
	"github.com/testboard-dev/testboard/internal/database/repositories"
	"github.com/testboard-dev/testboard/internal/echohttp"
)

type projectRepository interface {
	ReadBySlug(slug string) (models.Project, error)
}

type suiteRepository interface {
	ReadForProject(projectID, suiteID uuid.UUID) (models.Suite, error)
}

type caseRepository interface {
	ReadForSuite(suiteID, caseID uuid.UUID) (models.Case, error)
}

type runRepository interface {
	ReadForProject(projectID, runID uuid.UUID) (models.Run, error)
}

func projectMiddleware(repository projectRepository) core.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c core.Context) error {
			projectSlug, err := core.GetProjectSlug(c)
			if err != nil {
				return echo.NewHTTPError(400, "invalid project slug")
			}

			p, err := repository.ReadBySlug(projectSlug)
			if err != nil {
				return echo.NewHTTPError(404, "could not find project").WithInternal(err)
			}

			core.SetProject(c, p)
			return next(c)
		}
	}
}

func suiteMiddleware(repository suiteRepository) core.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c core.Context) error {
			suiteID, err := core.GetUUIDParam(c, "suiteID")
			if err != nil {
				return echo.NewHTTPError(400, "invalid suite id")
			}

			s, err := repository.ReadForProject(core.GetProject(c).ID, suiteID)
			if err != nil {
				return echo.NewHTTPError(404, "could not find suite").WithInternal(err)
			}

			core.SetSuite(c, s)
			return next(c)
		}
	}
}

func caseMiddleware(repository caseRepository) core.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c core.Context) error {
			caseID, err := core.GetUUIDParam(c, "caseID")
			if err != nil {
				return echo.NewHTTPError(400, "invalid case id")
			}

			testCase, err := repository.ReadForSuite(core.GetSuite(c).ID, caseID)
			if err != nil {
				return echo.NewHTTPError(404, "could not find case").WithInternal(err)
			}

			core.SetCase(c, testCase)
			return next(c)
		}
	}
}

func runMiddleware(repository runRepository) core.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c core.Context) error {
			runID, err := core.GetUUIDParam(c, "runID")
			if err != nil {
				return echo.NewHTTPError(400, "invalid run id")
			}

			r, err := repository.ReadForProject(core.GetProject(c).ID, runID)
			if err != nil {
				return echo.NewHTTPError(404, "could not find run").WithInternal(err)
			}

			core.SetRun(c, r)
			return next(c)
		}
	}
}

func rbacMiddleware(rbac accesscontrol.AccessControl) core.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c core.Context) error {
			core.SetRBAC(c, rbac)
			return next(c)
		}
	}
}

// liveness never touches the store.
func liveness(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "ok"})
}

// readiness does one trivial round trip and reports a generic failure -
// connection details stay in the logs.
func readiness(db core.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var one int
		if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
			return echo.NewHTTPError(503, "service unavailable").WithInternal(err)
		}
		return c.JSON(200, map[string]string{"status": "ok"})
	}
}

// Router wires every repository, controller and middleware. Split from
// Start so tests can drive the full http surface in process.
func Router(db core.DB, rbac accesscontrol.AccessControl, tokenService *auth.TokenService, openReads bool) *echo.Echo {
	userRepository := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	suiteRepo := repositories.NewSuiteRepository(db)
	caseRepo := repositories.NewCaseRepository(db)
	runRepo := repositories.NewRunRepository(db)
	resultRepo := repositories.NewResultRepository(db)

	ingestService := run.NewIngestService(caseRepo, resultRepo)

	userController := user.NewHTTPController(userRepository, tokenService, rbac)
	projectController := project.NewHTTPController(projectRepo, suiteRepo)
	suiteController := suite.NewHTTPController(suiteRepo, caseRepo)
	caseController := testcase.NewHTTPController(caseRepo)
	runController := run.NewHTTPController(runRepo, resultRepo, ingestService)

	server := echohttp.Server()

	server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiV1Router := server.Group("/api/v1")

	// health probes run without any session middleware
	apiV1Router.GET("/health/liveness", liveness)
	apiV1Router.GET("/health/readiness", readiness(db))

	apiV1Router.POST("/auth/register", userController.Register)
	apiV1Router.POST("/auth/login", userController.Login)

	// everything below this line is protected by the session middleware
	sessionRouter := apiV1Router.Group("", auth.SessionMiddleware(tokenService, openReads), rbacMiddleware(rbac))

	sessionRouter.GET("/me", userController.Me)
	sessionRouter.PUT("/users/:userID/role", userController.ChangeRole, core.AccessControlMiddleware(accesscontrol.ObjectUser, accesscontrol.ActionUpdate))

	sessionRouter.POST("/projects", projectController.Create, core.AccessControlMiddleware(accesscontrol.ObjectProject, accesscontrol.ActionCreate))
	sessionRouter.GET("/projects", projectController.List)

	projectRouter := sessionRouter.Group("/projects/:projectSlug", projectMiddleware(projectRepo))
	projectRouter.GET("", projectController.Read)
	projectRouter.PATCH("", projectController.Update, core.AccessControlMiddleware(accesscontrol.ObjectProject, accesscontrol.ActionUpdate))
	projectRouter.DELETE("", projectController.Delete, core.AccessControlMiddleware(accesscontrol.ObjectProject, accesscontrol.ActionDelete))

	projectRouter.POST("/suites", suiteController.Create, core.AccessControlMiddleware(accesscontrol.ObjectSuite, accesscontrol.ActionCreate))
	projectRouter.GET("/suites", suiteController.List)

	suiteRouter := projectRouter.Group("/suites/:suiteID", suiteMiddleware(suiteRepo))
	suiteRouter.GET("", suiteController.Read)
	suiteRouter.PATCH("", suiteController.Update, core.AccessControlMiddleware(accesscontrol.ObjectSuite, accesscontrol.ActionUpdate))
	suiteRouter.DELETE("", suiteController.Delete, core.AccessControlMiddleware(accesscontrol.ObjectSuite, accesscontrol.ActionDelete))

	suiteRouter.POST("/cases", caseController.Create, core.AccessControlMiddleware(accesscontrol.ObjectCase, accesscontrol.ActionCreate))
	suiteRouter.GET("/cases", caseController.List)

	caseRouter := suiteRouter.Group("/cases/:caseID", caseMiddleware(caseRepo))
	caseRouter.GET("", caseController.Read)
	caseRouter.PATCH("", caseController.Update, core.AccessControlMiddleware(accesscontrol.ObjectCase, accesscontrol.ActionUpdate))
	caseRouter.DELETE("", caseController.Delete, core.AccessControlMiddleware(accesscontrol.ObjectCase, accesscontrol.ActionDelete))
	caseRouter.GET("/history", caseController.History)

	projectRouter.POST("/runs", runController.Create, core.AccessControlMiddleware(accesscontrol.ObjectRun, accesscontrol.ActionCreate))
	projectRouter.GET("/runs", runController.List)

	runRouter := projectRouter.Group("/runs/:runID", runMiddleware(runRepo))
	runRouter.GET("/summary", runController.Summary)
	runRouter.GET("/results", runController.Results)
	runRouter.POST("/results", runController.SubmitResults, core.AccessControlMiddleware(accesscontrol.ObjectResult, accesscontrol.ActionCreate))

	return server
}

func Start(db core.DB, rbac accesscontrol.AccessControl) {
	ttl := 24 * time.Hour
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			slog.Error("invalid JWT_TTL", "value", raw, "err", err)
			panic(err)
		}
		ttl = parsed
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}

	tokenService := auth.NewTokenService(secret, ttl)
	server := Router(db, rbac, tokenService, os.Getenv("OPEN_READS") == "true")

	routes := server.Routes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	// print all registered routes
	for _, route := range routes {
		if route.Method != "echo_route_not_found" {
			slog.Info(route.Path, "method", route.Method)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Error("failed to start server", "err", server.Start(":"+port).Error())
}
