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
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
	"github.com/testboard-dev/testboard/internal/database/models"
)

func GetSession(ctx Context) AuthSession {
	return ctx.Get("session").(AuthSession)
}

func SetSession(ctx Context, session AuthSession) {
	ctx.Set("session", session)
}

// HasSession is used by read handlers that may run without a session
// when open reads are enabled.
func HasSession(ctx Context) bool {
	_, ok := ctx.Get("session").(AuthSession)
	return ok
}

func GetRBAC(ctx Context) accesscontrol.AccessControl {
	return ctx.Get("rbac").(accesscontrol.AccessControl)
}

func SetRBAC(ctx Context, rbac accesscontrol.AccessControl) {
	ctx.Set("rbac", rbac)
}

func GetProject(ctx Context) models.Project {
	return ctx.Get("project").(models.Project)
}

func SetProject(ctx Context, project models.Project) {
	ctx.Set("project", project)
}

func GetSuite(ctx Context) models.Suite {
	return ctx.Get("suite").(models.Suite)
}

func SetSuite(ctx Context, suite models.Suite) {
	ctx.Set("suite", suite)
}

func GetCase(ctx Context) models.Case {
	return ctx.Get("testCase").(models.Case)
}

func SetCase(ctx Context, testCase models.Case) {
	ctx.Set("testCase", testCase)
}

func GetRun(ctx Context) models.Run {
	return ctx.Get("run").(models.Run)
}

func SetRun(ctx Context, run models.Run) {
	ctx.Set("run", run)
}

func GetProjectSlug(ctx Context) (string, error) {
	slug := ctx.Param("projectSlug")
	if slug == "" {
		return "", fmt.Errorf("could not get project slug")
	}
	return slug, nil
}

// GetUUIDParam parses a path parameter as uuid.
func GetUUIDParam(ctx Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}

type PageInfo struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

func (p PageInfo) ApplyOnDB(db DB) DB {
	return db.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}

type Paged[T any] struct {
	PageInfo
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

func (p Paged[T]) Map(f func(T) any) Paged[any] {
	data := make([]any, len(p.Data))
	for i, d := range p.Data {
		data[i] = f(d)
	}
	return Paged[any]{
		PageInfo: p.PageInfo,
		Total:    p.Total,
		Data:     data,
	}
}

func NewPaged[T any](pageInfo PageInfo, total int64, data []T) Paged[T] {
	return Paged[T]{
		PageInfo: pageInfo,
		Total:    total,
		Data:     data,
	}
}

func GetPageInfo(ctx Context) PageInfo {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))
	switch {
	case pageSize > 100:
		pageSize = 100
	case pageSize <= 0:
		pageSize = 10
	}

	return PageInfo{
		Page:     page,
		PageSize: pageSize,
	}
}
