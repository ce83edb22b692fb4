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

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/testboard-dev/testboard/cmd/testboard/api"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database"
)

func initSentry() {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("ERROR_TRACKING_DSN"),
		TracesSampleRate: 0.1,
	})
	if err != nil {
		slog.Error("could not initialize error tracking", "err", err)
	}
}

func main() {
	core.LoadConfig() // nolint: errcheck
	core.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, err := core.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error()) // print detailed error message to stdout
		panic(errors.New("failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrations(db); err != nil {
			slog.Error("failed to run database migrations", "err", err)
			panic(errors.New("failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	rbac, err := accesscontrol.NewCasbinRBAC(db)
	if err != nil {
		slog.Error("failed to setup access control", "err", err)
		panic(errors.New("failed to setup access control"))
	}

	if err := core.BootstrapAccessControl(rbac); err != nil {
		slog.Error("failed to bootstrap access control", "err", err)
		panic(errors.New("failed to bootstrap access control"))
	}

	api.Start(db, rbac)
}
