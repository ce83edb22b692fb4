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
	"github.com/labstack/echo/v4"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
)

// AccessControlMiddleware is the single authorization gate. Every
// mutating route declares the object/action it needs and nothing else.
func AccessControlMiddleware(obj accesscontrol.Object, act accesscontrol.Action) MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c Context) error {
			rbac := GetRBAC(c)
			session := GetSession(c)

			allowed, err := rbac.IsAllowed(session.GetUserID(), obj, act)
			if err != nil {
				return echo.NewHTTPError(500, "could not determine if the user has access").WithInternal(err)
			}

			if !allowed {
				return echo.NewHTTPError(403, "forbidden")
			}

			return next(c)
		}
	}
}
