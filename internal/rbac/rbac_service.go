package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles are fixed; there is no tenant- or user-defined role management.
const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

// Resources and actions referenced by the permission table and the route
// definitions. Scope predicates (self, direct report, owner) are evaluated
// in the handlers, not here.
const (
	ResourceUser         = "user"
	ResourceLeaveType    = "leave_type"
	ResourceLeaveRequest = "leave_request"

	ActionCreate             = "create"
	ActionRead               = "read"
	ActionList               = "list"
	ActionListOwn            = "list_own"
	ActionUpdate             = "update"
	ActionDelete             = "delete"
	ActionChangePassword     = "change_password"
	ActionAssignManager      = "assign_manager"
	ActionPromote            = "promote"
	ActionListManagersByDept = "list_managers_by_department"
	ActionUpdateStatus       = "update_status"
	ActionCancel             = "cancel"
	ActionDashboard          = "dashboard"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Permission grants a role one action on one resource.
type Permission struct {
	Role     string
	Resource string
	Action   string
}

// permissions is the whole authorization policy. Endpoints authorize by
// looking up (role, resource, action) here instead of branching on role
// strings per handler.
var permissions = []Permission{
	// Users
	{RoleAdmin, ResourceUser, ActionList},
	{RoleManager, ResourceUser, ActionList},
	{RoleEmployee, ResourceUser, ActionRead},
	{RoleManager, ResourceUser, ActionRead},
	{RoleAdmin, ResourceUser, ActionRead},
	{RoleEmployee, ResourceUser, ActionUpdate},
	{RoleManager, ResourceUser, ActionUpdate},
	{RoleAdmin, ResourceUser, ActionUpdate},
	{RoleEmployee, ResourceUser, ActionChangePassword},
	{RoleManager, ResourceUser, ActionChangePassword},
	{RoleAdmin, ResourceUser, ActionChangePassword},
	{RoleAdmin, ResourceUser, ActionDelete},
	{RoleAdmin, ResourceUser, ActionAssignManager},
	{RoleAdmin, ResourceUser, ActionPromote},
	{RoleAdmin, ResourceUser, ActionListManagersByDept},

	// Leave types
	{RoleAdmin, ResourceLeaveType, ActionCreate},
	{RoleEmployee, ResourceLeaveType, ActionList},
	{RoleManager, ResourceLeaveType, ActionList},
	{RoleAdmin, ResourceLeaveType, ActionList},
	{RoleAdmin, ResourceLeaveType, ActionRead},
	{RoleAdmin, ResourceLeaveType, ActionUpdate},
	{RoleAdmin, ResourceLeaveType, ActionDelete},

	// Leave requests
	{RoleEmployee, ResourceLeaveRequest, ActionCreate},
	{RoleManager, ResourceLeaveRequest, ActionCreate},
	{RoleAdmin, ResourceLeaveRequest, ActionCreate},
	{RoleAdmin, ResourceLeaveRequest, ActionList},
	{RoleManager, ResourceLeaveRequest, ActionList},
	{RoleEmployee, ResourceLeaveRequest, ActionListOwn},
	{RoleEmployee, ResourceLeaveRequest, ActionRead},
	{RoleManager, ResourceLeaveRequest, ActionRead},
	{RoleAdmin, ResourceLeaveRequest, ActionRead},
	{RoleManager, ResourceLeaveRequest, ActionUpdateStatus},
	{RoleAdmin, ResourceLeaveRequest, ActionUpdateStatus},
	{RoleEmployee, ResourceLeaveRequest, ActionCancel},
	{RoleManager, ResourceLeaveRequest, ActionCancel},
	{RoleAdmin, ResourceLeaveRequest, ActionCancel},
	{RoleEmployee, ResourceLeaveRequest, ActionDashboard},
	{RoleManager, ResourceLeaveRequest, ActionDashboard},
	{RoleAdmin, ResourceLeaveRequest, ActionDashboard},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

// NewService loads the static permission table into a casbin enforcer.
// The policy never changes at runtime, so the enforcer is safe for
// concurrent Enforce calls.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	for _, p := range permissions {
		if _, err := enforcer.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			return nil, fmt.Errorf("rbac add policy %v: %w", p, err)
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
