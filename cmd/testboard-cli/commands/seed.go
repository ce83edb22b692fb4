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

package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
	"github.com/testboard-dev/testboard/internal/auth"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database"
	"github.com/testboard-dev/testboard/internal/database/models"
	"gorm.io/gorm"
)

// NewSeedCommand creates demo data for development: three users (one
// per role), a demo project with a smoke suite, two cases and one run
// holding a pass and a fail result.
func NewSeedCommand() *cobra.Command {
	seed := cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo data",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			core.LoadConfig() // nolint
			db, err := core.DatabaseFactory()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			if err := database.RunMigrations(db); err != nil {
				slog.Error("could not run migrations", "err", err)
				return
			}

			rbac, err := accesscontrol.NewCasbinRBAC(db)
			if err != nil {
				slog.Error("could not setup access control", "err", err)
				return
			}
			if err := core.BootstrapAccessControl(rbac); err != nil {
				slog.Error("could not bootstrap access control", "err", err)
				return
			}

			if err := runSeed(db, rbac); err != nil {
				slog.Error("could not seed database", "err", err)
				return
			}
			slog.Info("seeded demo data")
		},
	}

	seed.Flags().String("admin-password", "admin123", "password of the seeded admin user")
	seed.Flags().String("qa-password", "qa123", "password of the seeded qa user")
	seed.Flags().String("dev-password", "dev123", "password of the seeded dev user")
	viper.BindPFlag("seed.adminPassword", seed.Flags().Lookup("admin-password")) // nolint: errcheck
	viper.BindPFlag("seed.qaPassword", seed.Flags().Lookup("qa-password"))       // nolint: errcheck
	viper.BindPFlag("seed.devPassword", seed.Flags().Lookup("dev-password"))     // nolint: errcheck

	return &seed
}

func seedUser(db *gorm.DB, rbac accesscontrol.AccessControl, email, password string, role models.UserRole) (models.User, error) {
	digest, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Email: email, PasswordHash: digest, Role: role}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, rbac.GrantRole(user.ID.String(), string(role))
}

func runSeed(db *gorm.DB, rbac accesscontrol.AccessControl) error {
	admin, err := seedUser(db, rbac, "admin@test.com", viper.GetString("seed.adminPassword"), models.UserRoleAdmin)
	if err != nil {
		return err
	}
	qa, err := seedUser(db, rbac, "qa@test.com", viper.GetString("seed.qaPassword"), models.UserRoleQA)
	if err != nil {
		return err
	}
	if _, err := seedUser(db, rbac, "dev@test.com", viper.GetString("seed.devPassword"), models.UserRoleDev); err != nil {
		return err
	}

	project := models.Project{Name: "Demo Project", Slug: "demo-project", CreatedByID: admin.ID}
	if err := db.Create(&project).Error; err != nil {
		return err
	}

	suite := models.Suite{ProjectID: project.ID, Name: "Smoke"}
	if err := db.Create(&suite).Error; err != nil {
		return err
	}

	caseLogin := models.Case{SuiteID: suite.ID, Title: "Login works", Steps: "Open -> Fill -> Submit", Expected: "200 OK"}
	caseCreate := models.Case{SuiteID: suite.ID, Title: "Create project", Steps: "POST /projects", Expected: "201 Created"}
	if err := db.Create(&caseLogin).Error; err != nil {
		return err
	}
	if err := db.Create(&caseCreate).Error; err != nil {
		return err
	}

	run := models.Run{ProjectID: project.ID, CreatedByID: qa.ID, TriggeredByCI: false}
	if err := db.Create(&run).Error; err != nil {
		return err
	}

	results := []models.Result{
		{RunID: run.ID, CaseID: caseLogin.ID, Status: models.ResultStatusPass, DurationMS: 850},
		{RunID: run.ID, CaseID: caseCreate.ID, Status: models.ResultStatusFail, DurationMS: 1200},
	}
	return db.Create(&results).Error
}
