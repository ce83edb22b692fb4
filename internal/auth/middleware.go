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

package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/testboard-dev/testboard/internal/core"
)

// SessionMiddleware turns a bearer credential into a session on the
// context. openReads is the single deployment switch that lets GET
// requests through without a credential - mutating verbs always need
// one.
func SessionMiddleware(tokenService *TokenService, openReads bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				if openReads && c.Request().Method == http.MethodGet {
					return next(c)
				}
				return echo.NewHTTPError(401, "missing credential")
			}

			session, err := tokenService.Verify(token)
			if err != nil {
				return echo.NewHTTPError(401, "invalid or expired credential")
			}

			core.SetSession(c, session)
			return next(c)
		}
	}
}
