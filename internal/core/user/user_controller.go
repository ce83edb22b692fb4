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

package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
	"github.com/testboard-dev/testboard/internal/auth"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database"
	"github.com/testboard-dev/testboard/internal/database/models"
)

type userRepository interface {
	Create(tx core.DB, user *models.User) error
	Read(id uuid.UUID) (models.User, error)
	ReadByEmail(email string) (models.User, error)
	Save(tx core.DB, user *models.User) error
}

type tokenService interface {
	Issue(userID uuid.UUID, role string) (string, time.Time, error)
}

type Controller struct {
	userRepository userRepository
	tokenService   tokenService
	rbac           accesscontrol.AccessControl
}

func NewHTTPController(repository userRepository, tokenService tokenService, rbac accesscontrol.AccessControl) *Controller {
	return &Controller{
		userRepository: repository,
		tokenService:   tokenService,
		rbac:           rbac,
	}
}

func (u *Controller) Register(c core.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleDev
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(500, "could not process password").WithInternal(err)
	}

	model := models.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: digest,
		Role:         role,
	}

	if err := u.userRepository.Create(nil, &model); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "email already registered")
		}
		return echo.NewHTTPError(500, "could not create user").WithInternal(err)
	}

	if err := u.rbac.GrantRole(model.ID.String(), string(model.Role)); err != nil {
		return echo.NewHTTPError(500, "could not assign role").WithInternal(err)
	}

	return c.JSON(201, fromModel(model))
}

func (u *Controller) Login(c core.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	// the same answer for unknown email and wrong password
	model, err := u.userRepository.ReadByEmail(req.Email)
	if err != nil || !auth.VerifyPassword(req.Password, model.PasswordHash) {
		return echo.NewHTTPError(401, "invalid credentials")
	}

	token, expiresAt, err := u.tokenService.Issue(model.ID, string(model.Role))
	if err != nil {
		return echo.NewHTTPError(500, "could not issue credential").WithInternal(err)
	}

	return c.JSON(200, tokenResponse{Token: token, ExpiresAt: expiresAt})
}

func (u *Controller) Me(c core.Context) error {
	// reachable without a session when open reads are enabled
	if !core.HasSession(c) {
		return echo.NewHTTPError(401, "missing credential")
	}

	userID, err := uuid.Parse(core.GetSession(c).GetUserID())
	if err != nil {
		return echo.NewHTTPError(401, "invalid session")
	}

	model, err := u.userRepository.Read(userID)
	if err != nil {
		return err
	}

	return c.JSON(200, fromModel(model))
}

// ChangeRole is the only user mutation besides the password. The route
// is admin gated.
func (u *Controller) ChangeRole(c core.Context) error {
	userID, err := core.GetUUIDParam(c, "userID")
	if err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	model, err := u.userRepository.Read(userID)
	if err != nil {
		return err
	}

	previousRole := model.Role
	model.Role = models.UserRole(req.Role)
	if err := u.userRepository.Save(nil, &model); err != nil {
		return echo.NewHTTPError(500, "could not update user").WithInternal(err)
	}

	// keep the rbac assignment in sync with the stored role
	if previousRole != model.Role {
		if err := u.rbac.RevokeRole(model.ID.String(), string(previousRole)); err != nil {
			return echo.NewHTTPError(500, "could not update role assignment").WithInternal(err)
		}
		if err := u.rbac.GrantRole(model.ID.String(), string(model.Role)); err != nil {
			return echo.NewHTTPError(500, "could not update role assignment").WithInternal(err)
		}
	}

	return c.JSON(200, fromModel(model))
}
