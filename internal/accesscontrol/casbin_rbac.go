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

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

var _ AccessControl = &CasbinRBAC{}

// testboard is single tenant, so unlike a per-organization setup there
// is exactly one enforcer over one policy set.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type CasbinRBAC struct {
	enforcer *casbin.Enforcer
}

// NewCasbinRBAC stores the policy in a casbin_rule table next to the
// domain tables, so policy changes share the transactionality of the
// rest of the store.
func NewCasbinRBAC(db *gorm.DB) (*CasbinRBAC, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}

	return &CasbinRBAC{enforcer: enforcer}, nil
}

func (c *CasbinRBAC) GrantRole(subject, role string) error {
	_, err := c.enforcer.AddGroupingPolicy("user::"+subject, "role::"+role)
	return err
}

func (c *CasbinRBAC) RevokeRole(subject, role string) error {
	_, err := c.enforcer.RemoveGroupingPolicy("user::"+subject, "role::"+role)
	return err
}

func (c *CasbinRBAC) InheritRole(roleWhichGetsPermissions, roleWhichProvidesPermissions string) error {
	_, err := c.enforcer.AddGroupingPolicy("role::"+roleWhichGetsPermissions, "role::"+roleWhichProvidesPermissions)
	return err
}

func (c *CasbinRBAC) AllowRole(role string, object Object, actions []Action) error {
	policies := make([][]string, len(actions))
	for i, action := range actions {
		policies[i] = []string{"role::" + role, "obj::" + string(object), "act::" + string(action)}
	}

	_, err := c.enforcer.AddPolicies(policies)
	return err
}

func (c *CasbinRBAC) IsAllowed(subject string, object Object, action Action) (bool, error) {
	return c.enforcer.Enforce("user::"+subject, "obj::"+string(object), "act::"+string(action))
}

func (c *CasbinRBAC) RolesOf(subject string) ([]string, error) {
	prefixed, err := c.enforcer.GetImplicitRolesForUser("user::" + subject)
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(prefixed))
	for _, role := range prefixed {
		roles = append(roles, strings.TrimPrefix(role, "role::"))
	}
	return roles, nil
}
