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

package core

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
	"github.com/testboard-dev/testboard/internal/database"
	"gorm.io/gorm"
)

type Server = *echo.Group
type MiddlewareFunc = echo.MiddlewareFunc
type Context = echo.Context
type DB = *gorm.DB

func Ptr[T any](t T) *T {
	return &t
}

var V = validator.New()

func DatabaseFactory() (DB, error) {
	return database.NewConnection(os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("POSTGRES_DB"), os.Getenv("POSTGRES_PORT"))
}

// InitLogger initializes the logger with a tint handler.
// tint is a simple logging library that allows to add colors to the log output.
// this is obviously not required, but it makes the logs easier to read.
func InitLogger() {
	w := os.Stderr

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		}),
	))
}

func LoadConfig() error {
	return godotenv.Load()
}

// BootstrapAccessControl installs the role matrix. Safe to call on
// every boot - existing rules are left untouched.
func BootstrapAccessControl(rbac accesscontrol.AccessControl) error {
	if err := rbac.InheritRole(accesscontrol.RoleAdmin, accesscontrol.RoleQA); err != nil { // an admin is a qa
		return err
	}
	if err := rbac.InheritRole(accesscontrol.RoleQA, accesscontrol.RoleDev); err != nil { // a qa is a dev
		return err
	}

	// dev is read-only
	for _, object := range []accesscontrol.Object{
		accesscontrol.ObjectProject,
		accesscontrol.ObjectSuite,
		accesscontrol.ObjectCase,
		accesscontrol.ObjectRun,
		accesscontrol.ObjectResult,
	} {
		if err := rbac.AllowRole(accesscontrol.RoleDev, object, []accesscontrol.Action{
			accesscontrol.ActionRead,
		}); err != nil {
			return err
		}
	}

	// qa maintains the catalog and ingests runs
	for _, object := range []accesscontrol.Object{
		accesscontrol.ObjectProject,
		accesscontrol.ObjectSuite,
		accesscontrol.ObjectCase,
	} {
		if err := rbac.AllowRole(accesscontrol.RoleQA, object, []accesscontrol.Action{
			accesscontrol.ActionCreate,
			accesscontrol.ActionUpdate,
		}); err != nil {
			return err
		}
	}
	if err := rbac.AllowRole(accesscontrol.RoleQA, accesscontrol.ObjectRun, []accesscontrol.Action{
		accesscontrol.ActionCreate,
	}); err != nil {
		return err
	}
	if err := rbac.AllowRole(accesscontrol.RoleQA, accesscontrol.ObjectResult, []accesscontrol.Action{
		accesscontrol.ActionCreate,
	}); err != nil {
		return err
	}

	// archiving, hard deletes and user management stay with admin
	for _, object := range []accesscontrol.Object{
		accesscontrol.ObjectProject,
		accesscontrol.ObjectSuite,
		accesscontrol.ObjectCase,
		accesscontrol.ObjectRun,
	} {
		if err := rbac.AllowRole(accesscontrol.RoleAdmin, object, []accesscontrol.Action{
			accesscontrol.ActionDelete,
		}); err != nil {
			return err
		}
	}
	return rbac.AllowRole(accesscontrol.RoleAdmin, accesscontrol.ObjectUser, []accesscontrol.Action{
		accesscontrol.ActionCreate,
		accesscontrol.ActionRead,
		accesscontrol.ActionUpdate,
		accesscontrol.ActionDelete,
	})
}
