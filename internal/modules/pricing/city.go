// README: City profile table and resolver (slug, then display name, then default city).
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNoProfiles     = errors.New("no city profiles")
	ErrDuplicateCity  = errors.New("duplicate city slug")
	ErrEmptyCitySlug  = errors.New("empty city slug")
	ErrMissingDefault = errors.New("default city profile missing")
)

// CityTable is an immutable slug-indexed set of profiles. It is built once
// and shared read-only between requests.
type CityTable struct {
	bySlug      map[string]CityProfile
	slugs       []string
	defaultSlug string
}

// NewCityTable validates the profiles and indexes them by lowercase slug.
func NewCityTable(profiles []CityProfile, defaultSlug string) (*CityTable, error) {
	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}
	defaultSlug = normalizeCityKey(defaultSlug)
	if defaultSlug == "" {
		defaultSlug = DefaultCitySlug
	}

	t := &CityTable{
		bySlug:      make(map[string]CityProfile, len(profiles)),
		slugs:       make([]string, 0, len(profiles)),
		defaultSlug: defaultSlug,
	}
	for _, p := range profiles {
		slug := normalizeCityKey(p.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w (name %q)", ErrEmptyCitySlug, p.Name)
		}
		if _, ok := t.bySlug[slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCity, slug)
		}
		p.Slug = slug
		t.bySlug[slug] = p
		t.slugs = append(t.slugs, slug)
	}
	if _, ok := t.bySlug[defaultSlug]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingDefault, defaultSlug)
	}
	sort.Strings(t.slugs)
	return t, nil
}

// MustCityTable panics on invalid input. Intended for the built-in set and tests.
func MustCityTable(profiles []CityProfile, defaultSlug string) *CityTable {
	t, err := NewCityTable(profiles, defaultSlug)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve never fails: unknown input resolves to the default city.
func (t *CityTable) Resolve(input string) CityProfile {
	if p, ok := t.Lookup(input); ok {
		return p
	}
	return t.bySlug[t.defaultSlug]
}

// Lookup matches input against slugs first, then display names.
func (t *CityTable) Lookup(input string) (CityProfile, bool) {
	key := normalizeCityKey(input)
	if key == "" {
		return CityProfile{}, false
	}
	if p, ok := t.bySlug[key]; ok {
		return p, true
	}
	for _, slug := range t.slugs {
		p := t.bySlug[slug]
		if normalizeCityKey(p.Name) == key {
			return p, true
		}
	}
	return CityProfile{}, false
}

// List returns profiles ordered by slug.
func (t *CityTable) List() []CityProfile {
	out := make([]CityProfile, 0, len(t.slugs))
	for _, slug := range t.slugs {
		out = append(out, t.bySlug[slug])
	}
	return out
}

func (t *CityTable) Default() CityProfile {
	return t.bySlug[t.defaultSlug]
}

func (t *CityTable) Len() int {
	return len(t.slugs)
}

func normalizeCityKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultCityProfiles is the built-in profile set used when no file or
// database source is configured.
func DefaultCityProfiles() []CityProfile {
	return []CityProfile{
		{
			Slug: "bengaluru", Name: "Bengaluru", State: "Karnataka",
			RTOPct: 0.18, EVRTOPct: 0, InsurancePct: 0.028, GreenCessPct: 0,
			RegistrationInr: 300, HandlingInr: 1800, HSRPInr: 650, FastagInr: 0,
			SmartCardInr: 200, HypothecationInr: 1500, RoadSafetyInr: 100,
			FuelPricePerL: 102.92, EVCostPerKm: 0.55,
		},
		{
			Slug: "delhi", Name: "Delhi", State: "Delhi",
			RTOPct: 0.10, EVRTOPct: 0, InsurancePct: 0.026, GreenCessPct: 0.005,
			RegistrationInr: 300, HandlingInr: 1200, HSRPInr: 600, FastagInr: 0,
			SmartCardInr: 200, HypothecationInr: 1500, RoadSafetyInr: 50,
			FuelPricePerL: 94.77, EVCostPerKm: 0.45,
		},
		{
			Slug: "mumbai", Name: "Mumbai", State: "Maharashtra",
			RTOPct: 0.11, EVRTOPct: 0, InsurancePct: 0.029, GreenCessPct: 0.01,
			RegistrationInr: 300, HandlingInr: 2000, HSRPInr: 700, FastagInr: 0,
			SmartCardInr: 350, HypothecationInr: 1500, RoadSafetyInr: 150,
			FuelPricePerL: 103.44, EVCostPerKm: 0.6,
		},
		{
			Slug: "pune", Name: "Pune", State: "Maharashtra",
			RTOPct: 0.11, EVRTOPct: 0, InsurancePct: 0.027, GreenCessPct: 0.01,
			RegistrationInr: 300, HandlingInr: 1500, HSRPInr: 700, FastagInr: 0,
			SmartCardInr: 350, HypothecationInr: 1500, RoadSafetyInr: 150,
			FuelPricePerL: 103.95, EVCostPerKm: 0.58,
		},
		{
			Slug: "hyderabad", Name: "Hyderabad", State: "Telangana",
			RTOPct: 0.14, EVRTOPct: 0, InsurancePct: 0.027, GreenCessPct: 0,
			RegistrationInr: 300, HandlingInr: 1500, HSRPInr: 620, FastagInr: 0,
			SmartCardInr: 200, HypothecationInr: 1400, RoadSafetyInr: 100,
			FuelPricePerL: 107.41, EVCostPerKm: 0.5,
		},
		{
			Slug: "chennai", Name: "Chennai", State: "Tamil Nadu",
			RTOPct: 0.10, EVRTOPct: 0, InsurancePct: 0.026, GreenCessPct: 0,
			RegistrationInr: 300, HandlingInr: 1400, HSRPInr: 600, FastagInr: 0,
			SmartCardInr: 200, HypothecationInr: 1400, RoadSafetyInr: 100,
			FuelPricePerL: 100.75, EVCostPerKm: 0.48,
		},
		{
			Slug: "kolkata", Name: "Kolkata", State: "West Bengal",
			RTOPct: 0.10, EVRTOPct: 0, InsurancePct: 0.025, GreenCessPct: 0.005,
			RegistrationInr: 300, HandlingInr: 1200, HSRPInr: 600, FastagInr: 0,
			SmartCardInr: 200, HypothecationInr: 1300, RoadSafetyInr: 80,
			FuelPricePerL: 105.01, EVCostPerKm: 0.52,
		},
		{
			Slug: "jaipur", Name: "Jaipur", State: "Rajasthan",
			RTOPct: 0.09, EVRTOPct: 0.01, InsurancePct: 0.025, GreenCessPct: 0.005,
			RegistrationInr: 300, HandlingInr: 1100, HSRPInr: 550, FastagInr: 0,
			SmartCardInr: 200, HypothecationInr: 1300, RoadSafetyInr: 80,
			FuelPricePerL: 104.88, EVCostPerKm: 0.5,
		},
		{
			Slug: "ahmedabad", Name: "Ahmedabad", State: "Gujarat",
			RTOPct: 0.06, EVRTOPct: 0, InsurancePct: 0.025, GreenCessPct: 0,
			RegistrationInr: 300, HandlingInr: 1200, HSRPInr: 550, FastagInr: 0,
			SmartCardInr: 200, HypothecationInr: 1300, RoadSafetyInr: 80,
			FuelPricePerL: 94.49, EVCostPerKm: 0.46,
		},
		{
			Slug: "kochi", Name: "Kochi", State: "Kerala",
			RTOPct: 0.12, EVRTOPct: 0.05, InsurancePct: 0.027, GreenCessPct: 0.005,
			RegistrationInr: 300, HandlingInr: 1300, HSRPInr: 600, FastagInr: 0,
			SmartCardInr: 250, HypothecationInr: 1400, RoadSafetyInr: 100,
			FuelPricePerL: 107.56, EVCostPerKm: 0.53,
		},
	}
}
