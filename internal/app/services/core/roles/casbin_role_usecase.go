package roles

import (
	"referral-portal-service/internal/app/contracts"
	"sort"
	"strings"

	"github.com/casbin/casbin/v2"
)

type CasbinAuthorizer struct {
	enforcer *casbin.Enforcer
}

func NewCasbinAuthorizer(e *casbin.Enforcer) contracts.Authorizer {
	return &CasbinAuthorizer{enforcer: e}
}

func (a *CasbinAuthorizer) Authorize(role, method, path string) (bool, error) {
	return a.enforcer.Enforce(role, method, path)
}

// PermissionsFor flattens the role's direct and inherited policies into
// "METHOD path" strings, sorted for stable output.
func (a *CasbinAuthorizer) PermissionsFor(role string) ([]string, error) {
	policies, err := a.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(policies))
	permissions := make([]string, 0, len(policies))
	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		permission := strings.ToUpper(policy[1]) + " " + policy[2]
		if seen[permission] {
			continue
		}
		seen[permission] = true
		permissions = append(permissions, permission)
	}
	sort.Strings(permissions)
	return permissions, nil
}
