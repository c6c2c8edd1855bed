package rbac

import (
	"log"
	"referral-portal-service/internal/pkg/utils"

	"github.com/casbin/casbin/v2"
)

// NewCasbinEnforcer loads the role to route model and policy from disk and
// registers pathMatch for the matcher.
func NewCasbinEnforcer(modelPath, policyPath string) *casbin.Enforcer {
	enforcer, err := NewEnforcer(modelPath, policyPath)
	if err != nil {
		log.Fatalf("Failed to initialize casbin enforcer: %s", err.Error())
	}
	log.Println("Successfully loaded rbac policy")
	return enforcer
}

func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}

	enforcer.AddFunction("pathMatch", func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return false, nil
		}
		requestPath, ok1 := args[0].(string)
		policyPath, ok2 := args[1].(string)
		if !ok1 || !ok2 {
			return false, nil
		}
		return utils.PathMatch(requestPath, policyPath), nil
	})

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	return enforcer, nil
}
