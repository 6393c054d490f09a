package subscription

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads plan definitions. Sources are read at startup; plan changes
// require a restart, matching the "immutable once referenced" rule.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// inMemSource serves a fixed plan map.
type inMemSource struct {
	plans map[string]Plan
}

// NewInMemSource returns an in-memory Source with a copy of the given plans.
func NewInMemSource(plans map[string]Plan) Source {
	copied := make(map[string]Plan, len(plans))
	for id, plan := range plans {
		plan.Quotas = maps.Clone(plan.Quotas)
		copied[id] = plan
	}
	return &inMemSource{plans: copied}
}

func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	out := make(map[string]Plan, len(s.plans))
	for id, plan := range s.plans {
		plan.Quotas = maps.Clone(plan.Quotas)
		out[id] = plan
	}
	return out, nil
}

// fileSource reads plan definitions from a YAML file keyed by plan ID:
//
//	free:
//	  name: Free
//	  max_users: 3
//	  quotas:
//	    max_vehicles: 2
//	  active: true
//	pro:
//	  name: Pro
//	  active: true
type fileSource struct {
	path string
}

// NewFileSource returns a Source reading plans from a YAML file.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (map[string]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan)
	if err := yaml.Unmarshal(data, &plans); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, fmt.Errorf("parse %s: %w", s.path, err))
	}

	for id, plan := range plans {
		if plan.ID == "" {
			plan.ID = id
			plans[id] = plan
		}
	}
	return plans, nil
}
