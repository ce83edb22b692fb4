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

package accesscontrol

const (
	RoleAdmin = "admin"
	RoleQA    = "qa"
	RoleDev   = "dev"
)

type Object string

const (
	ObjectUser    Object = "user"
	ObjectProject Object = "project"
	ObjectSuite   Object = "suite"
	ObjectCase    Object = "case"
	ObjectRun     Object = "run"
	ObjectResult  Object = "result"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AccessControl is the single capability-check gate every mutating
// operation goes through. Role checks never happen inline in handlers.
type AccessControl interface {
	GrantRole(subject, role string) error
	RevokeRole(subject, role string) error

	// InheritRole makes the first role receive all permissions of the
	// second one.
	InheritRole(roleWhichGetsPermissions, roleWhichProvidesPermissions string) error

	AllowRole(role string, object Object, actions []Action) error
	IsAllowed(subject string, object Object, action Action) (bool, error)

	RolesOf(subject string) ([]string, error)
}
