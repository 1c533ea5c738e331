// README: HCL city profile files and startup profile-source selection.
package pricing

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"go.uber.org/zap"
)

// profileDocument is the HCL layout:
//
//	default_city = "bengaluru"
//
//	city "delhi" {
//	  name             = "Delhi"
//	  state            = "Delhi"
//	  rto_pct          = 0.10
//	  insurance_pct    = 0.026
//	  fuel_price_per_l = 94.77
//	  ...
//	}
type profileDocument struct {
	DefaultCity string         `hcl:"default_city,optional"`
	Cities      []profileBlock `hcl:"city,block"`
}

type profileBlock struct {
	Slug             string  `hcl:"slug,label"`
	Name             string  `hcl:"name"`
	State            string  `hcl:"state,optional"`
	RTOPct           float64 `hcl:"rto_pct"`
	EVRTOPct         float64 `hcl:"ev_rto_pct,optional"`
	InsurancePct     float64 `hcl:"insurance_pct"`
	GreenCessPct     float64 `hcl:"green_cess_pct,optional"`
	RegistrationInr  int64   `hcl:"registration_inr,optional"`
	HandlingInr      int64   `hcl:"handling_inr,optional"`
	HSRPInr          int64   `hcl:"hsrp_inr,optional"`
	FastagInr        int64   `hcl:"fastag_inr,optional"`
	SmartCardInr     int64   `hcl:"smart_card_inr,optional"`
	HypothecationInr int64   `hcl:"hypothecation_inr,optional"`
	RoadSafetyInr    int64   `hcl:"road_safety_inr,optional"`
	FuelPricePerL    float64 `hcl:"fuel_price_per_l"`
	EVCostPerKm      float64 `hcl:"ev_cost_per_km,optional"`
}

func (b profileBlock) profile() CityProfile {
	return CityProfile{
		Slug:             b.Slug,
		Name:             b.Name,
		State:            b.State,
		RTOPct:           b.RTOPct,
		EVRTOPct:         b.EVRTOPct,
		InsurancePct:     b.InsurancePct,
		GreenCessPct:     b.GreenCessPct,
		RegistrationInr:  b.RegistrationInr,
		HandlingInr:      b.HandlingInr,
		HSRPInr:          b.HSRPInr,
		FastagInr:        b.FastagInr,
		SmartCardInr:     b.SmartCardInr,
		HypothecationInr: b.HypothecationInr,
		RoadSafetyInr:    b.RoadSafetyInr,
		FuelPricePerL:    b.FuelPricePerL,
		EVCostPerKm:      b.EVCostPerKm,
	}
}

// ParseProfiles decodes an HCL profile document. filename is used for
// diagnostics and must end in .hcl.
func ParseProfiles(filename string, src []byte) ([]CityProfile, string, error) {
	var doc profileDocument
	if err := hclsimple.Decode(filename, src, nil, &doc); err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", filename, err)
	}
	out := make([]CityProfile, 0, len(doc.Cities))
	for _, b := range doc.Cities {
		out = append(out, b.profile())
	}
	return out, doc.DefaultCity, nil
}

// LoadProfilesFile reads and decodes an HCL profile file.
func LoadProfilesFile(path string) ([]CityProfile, string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read profiles file: %w", err)
	}
	return ParseProfiles(path, src)
}

// ProfileLister is satisfied by Store.
type ProfileLister interface {
	ListProfiles(ctx context.Context) ([]CityProfile, error)
}

// Profile source names reported by LoadCityTable.
const (
	SourceDatabase = "database"
	SourceFile     = "file"
	SourceBuiltin  = "builtin"
)

// TableOptions selects where city profiles come from. A non-empty database
// wins over a file, which wins over the built-in set.
type TableOptions struct {
	Store       ProfileLister
	File        string
	DefaultCity string
}

// LoadCityTable builds the table once at startup.
func LoadCityTable(ctx context.Context, opts TableOptions, log *zap.Logger) (*CityTable, string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	defaultCity := opts.DefaultCity

	if opts.Store != nil {
		profiles, err := opts.Store.ListProfiles(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load profiles from database: %w", err)
		}
		if len(profiles) > 0 {
			t, err := NewCityTable(profiles, defaultCity)
			if err != nil {
				return nil, "", fmt.Errorf("database profiles: %w", err)
			}
			log.Info("city profiles loaded", zap.String("source", SourceDatabase), zap.Int("cities", t.Len()))
			return t, SourceDatabase, nil
		}
		log.Warn("city_profiles table is empty, falling back")
	}

	if opts.File != "" {
		profiles, fileDefault, err := LoadProfilesFile(opts.File)
		if err != nil {
			return nil, "", err
		}
		if defaultCity == "" {
			defaultCity = fileDefault
		}
		t, err := NewCityTable(profiles, defaultCity)
		if err != nil {
			return nil, "", fmt.Errorf("profiles file %s: %w", opts.File, err)
		}
		log.Info("city profiles loaded", zap.String("source", SourceFile), zap.String("path", opts.File), zap.Int("cities", t.Len()))
		return t, SourceFile, nil
	}

	t, err := NewCityTable(DefaultCityProfiles(), defaultCity)
	if err != nil {
		return nil, "", err
	}
	log.Info("city profiles loaded", zap.String("source", SourceBuiltin), zap.Int("cities", t.Len()))
	return t, SourceBuiltin, nil
}
