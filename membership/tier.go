package membership

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Tier describes a membership tier and the cohort label exposed in session
// claims.
type Tier struct {
	ID     string `yaml:"id"`
	Cohort string `yaml:"cohort"`
}

// TierCatalog maps tier ids to tiers. The baseline tier is assigned when a
// purchase is confirmed before the authoritative webhook has landed.
type TierCatalog struct {
	tiers    map[string]Tier
	baseline string
}

type catalogFile struct {
	Baseline string `yaml:"baseline"`
	Tiers    []Tier `yaml:"tiers"`
}

// ParseTierCatalog reads a YAML tier catalog.
func ParseTierCatalog(r io.Reader) (*TierCatalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse tier catalog: %w", err)
	}
	return NewTierCatalog(file.Baseline, file.Tiers...)
}

// NewTierCatalog builds a catalog from explicit tiers. The baseline id must
// name one of them.
func NewTierCatalog(baseline string, tiers ...Tier) (*TierCatalog, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: at least one tier is required", ErrUnknownTier)
	}

	byID := make(map[string]Tier, len(tiers))
	for _, tier := range tiers {
		if tier.ID == "" {
			return nil, fmt.Errorf("%w: tier id is required", ErrUnknownTier)
		}
		byID[tier.ID] = tier
	}

	if _, ok := byID[baseline]; !ok {
		return nil, fmt.Errorf("%w: baseline %q is not in the catalog", ErrUnknownTier, baseline)
	}

	return &TierCatalog{tiers: byID, baseline: baseline}, nil
}

// DefaultTierCatalog returns the built-in single-tier catalog used when no
// catalog file is configured.
func DefaultTierCatalog() *TierCatalog {
	catalog, err := NewTierCatalog("member", Tier{ID: "member", Cohort: "Member"})
	if err != nil {
		panic(err)
	}
	return catalog
}

// Baseline returns the default tier for provider-fallback handshakes.
func (c *TierCatalog) Baseline() Tier {
	return c.tiers[c.baseline]
}

// Get looks up a tier by id.
func (c *TierCatalog) Get(id string) (Tier, bool) {
	tier, ok := c.tiers[id]
	return tier, ok
}

// CohortFor returns the cohort label for a tier id, falling back to the
// baseline cohort for unknown or empty tiers so claims never carry raw ids.
func (c *TierCatalog) CohortFor(id string) string {
	if tier, ok := c.tiers[id]; ok {
		return tier.Cohort
	}
	return c.Baseline().Cohort
}
