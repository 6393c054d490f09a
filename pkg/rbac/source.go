package rbac

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicySource loads the authorization policy from a backing store.
// Sources are read once during startup; the authorizer never re-reads them.
type PolicySource interface {
	Load(ctx context.Context) (Policy, error)
}

// NewAuthorizerFromSource loads the policy from the source and builds an
// authorizer from it.
func NewAuthorizerFromSource(ctx context.Context, src PolicySource, memberships MembershipRepository) (*Authorizer, error) {
	policy, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPolicy, err)
	}
	return NewAuthorizer(policy, memberships)
}

// staticPolicySource serves a fixed policy, useful when the policy is
// assembled in code.
type staticPolicySource struct {
	policy Policy
}

// NewStaticPolicySource returns a source serving a deep copy of the given policy.
func NewStaticPolicySource(policy Policy) PolicySource {
	return &staticPolicySource{policy: policy.clone()}
}

func (s *staticPolicySource) Load(ctx context.Context) (Policy, error) {
	return s.policy.clone(), nil
}

// filePolicySource reads the policy from a YAML file.
//
// Expected shape:
//
//	role_permissions:
//	  admin: ["*"]
//	  staff: ["vehicles.read", "vehicles.create"]
//	global_view_roles: ["admin", "manager"]
//	impersonation_groups: ["support", "superadmin"]
type filePolicySource struct {
	path string
}

// NewFilePolicySource returns a source reading the policy from a YAML file.
func NewFilePolicySource(path string) PolicySource {
	return &filePolicySource{path: path}
}

func (s *filePolicySource) Load(ctx context.Context) (Policy, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file %s: %w", s.path, err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("parse policy file %s: %w", s.path, err)
	}
	return policy, nil
}
