package rbac

import (
	"go-procurement/internal/domain"

	"github.com/casbin/casbin/v2"
)

// roleMember is the implicit base role every user role inherits from.
const roleMember = "MEMBER"

type grant struct {
	resource string
	actions  []string
}

var inheritance = [][2]string{
	{string(domain.RoleSuperAdmin), string(domain.RoleAdmin)},
	{string(domain.RoleSuperAdmin), roleMember},
	{string(domain.RoleAdmin), roleMember},
	{string(domain.RoleUnitKerja), roleMember},
	{string(domain.RoleBSP), roleMember},
	{string(domain.RoleKKF), roleMember},
	{string(domain.RoleDAU), roleMember},
}

var lineItemWrite = grant{domain.ResourceLineItem, []string{domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete}}

var policy = map[string][]grant{
	roleMember: {
		{domain.ResourceUser, []string{domain.ActionRead}},
		{domain.ResourcePurchaseOrder, []string{
			domain.ActionRead, domain.ActionCreate, domain.ActionUpdate, domain.ActionSubmit, domain.ActionDelete,
		}},
		{domain.ResourceCostEstimate, []string{domain.ActionRead}},
		{domain.ResourceLineItem, []string{domain.ActionRead}},
		{domain.ResourceAudit, []string{domain.ActionRead}},
	},
	string(domain.RoleAdmin): {
		{domain.ResourcePurchaseOrder, []string{domain.ActionUpdateAny, domain.ActionComplete}},
		{domain.ResourceCostEstimate, []string{
			domain.ActionCreate, domain.ActionUpdate, domain.ActionSubmit, domain.ActionDelete,
		}},
		lineItemWrite,
	},
	string(domain.RoleSuperAdmin): {
		{domain.ResourceUser, []string{domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete}},
	},
	string(domain.RoleBSP): {
		{domain.ResourcePurchaseOrder, []string{domain.ActionApprove, domain.ActionComplete}},
		{domain.ResourceCostEstimate, []string{
			domain.ActionCreate, domain.ActionUpdate, domain.ActionSubmit, domain.ActionDelete,
		}},
		lineItemWrite,
	},
	string(domain.RoleDAU): {
		{domain.ResourcePurchaseOrder, []string{domain.ActionApprove}},
		{domain.ResourceCostEstimate, []string{
			domain.ActionApprove, domain.ActionUpdate, domain.ActionSubmit, domain.ActionDelete,
		}},
		lineItemWrite,
	},
}

func loadPolicy(e *casbin.Enforcer) error {
	for _, pair := range inheritance {
		if _, err := e.AddGroupingPolicy(pair[0], pair[1]); err != nil {
			return err
		}
	}
	for role, grants := range policy {
		for _, g := range grants {
			for _, action := range g.actions {
				if _, err := e.AddPolicy(role, g.resource, action); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
