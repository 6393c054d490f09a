package subscription

// Well-known quota keys matching the Plan's named limit fields.
const (
	QuotaUsers   = "max_users"
	QuotaRecords = "max_records"
)

// Plan describes a subscription tier and its quotas.
// A nil named limit or an absent key in Quotas means unlimited.
// Plans referenced by active subscriptions are treated as immutable.
type Plan struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// MaxUsers and MaxRecords are the named quotas every deployment has.
	MaxUsers   *int64 `json:"max_users,omitempty" yaml:"max_users,omitempty"`
	MaxRecords *int64 `json:"max_records,omitempty" yaml:"max_records,omitempty"`

	// Quotas holds domain-specific limits (e.g. "max_vehicles": 10) so
	// deployments can add their own without touching this package.
	Quotas map[string]int64 `json:"quotas,omitempty" yaml:"quotas,omitempty"`

	Active bool `json:"active" yaml:"active"`
}

// Limit returns the quota value for the given key. The named fields are
// consulted before the open-ended map. ok is false when the plan places no
// limit on the key, which callers must treat as unlimited.
func (p *Plan) Limit(key string) (limit int64, ok bool) {
	switch key {
	case QuotaUsers:
		if p.MaxUsers != nil {
			return *p.MaxUsers, true
		}
		return 0, false
	case QuotaRecords:
		if p.MaxRecords != nil {
			return *p.MaxRecords, true
		}
		return 0, false
	}

	limit, ok = p.Quotas[key]
	return limit, ok
}
