// README: Pricing service wraps the pure quote builders and rejects unusable input.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrInvalidExShowroom = errors.New("a valid ex-showroom price is required")
	ErrInvalidPrincipal  = errors.New("principal must be a positive amount")
	ErrOutOfRange        = errors.New("input outside the supported range")
)

// Upper bounds on caller input. They keep every rupee total well inside int64.
const (
	MaxAmountInr       = 1e12
	MaxUsageKmPerMonth = 1e6
	MaxUnitCostInr     = 1e6
	MaxYears           = 100.0
	MaxTenureMonths    = 1200.0
	MaxInterestRatePct = 100.0
)

func checkMax(field string, v *float64, limit float64) error {
	if v != nil && *v > limit {
		return fmt.Errorf("%w: %s must not exceed %.0f", ErrOutOfRange, field, limit)
	}
	return nil
}

func checkOnRoadInput(in OnRoadInput) error {
	if in.Vehicle.ExShowroom() > MaxAmountInr {
		return fmt.Errorf("%w: must not exceed %.0f", ErrInvalidExShowroom, MaxAmountInr)
	}
	return errors.Join(
		checkMax("accessoriesInr", &in.AccessoriesInr, MaxAmountInr),
		checkMax("extendedWarrantyInr", &in.ExtendedWarrantyInr, MaxAmountInr),
	)
}

func checkOwnershipInput(in OwnershipInput) error {
	if err := checkOnRoadInput(OnRoadInput{
		Vehicle:             in.Vehicle,
		AccessoriesInr:      in.AccessoriesInr,
		ExtendedWarrantyInr: in.ExtendedWarrantyInr,
	}); err != nil {
		return err
	}
	return errors.Join(
		checkMax("usageKmPerMonth", in.UsageKmPerMonth, MaxUsageKmPerMonth),
		checkMax("years", in.Years, MaxYears),
		checkMax("tenureMonths", in.TenureMonths, MaxTenureMonths),
		checkMax("interestRatePct", in.InterestRatePct, MaxInterestRatePct),
		checkMax("serviceCostPerYearInr", in.ServiceCostPerYearInr, MaxAmountInr),
		checkMax("insurancePerYearInr", in.InsurancePerYearInr, MaxAmountInr),
		checkMax("fuelPricePerL", in.FuelPricePerL, MaxUnitCostInr),
		checkMax("evCostPerKm", in.EVCostPerKm, MaxUnitCostInr),
	)
}

type Service struct {
	cities *CityTable
	log    *zap.Logger
}

func NewService(cities *CityTable, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cities: cities, log: log}
}

// Cities lists the configured profiles.
func (s *Service) Cities(ctx context.Context) []CitySummary {
	profiles := s.cities.List()
	out := make([]CitySummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Summary())
	}
	return out
}

func (s *Service) OnRoad(ctx context.Context, in OnRoadInput) (OnRoadQuote, error) {
	if err := checkOnRoadInput(in); err != nil {
		return OnRoadQuote{}, err
	}
	s.noteFallback(in.City)
	q := BuildOnRoadQuote(s.cities, in)
	if q.ExShowroomInr <= 0 {
		return OnRoadQuote{}, ErrInvalidExShowroom
	}
	s.log.Debug("on-road quote",
		zap.String("city", q.City.Slug),
		zap.String("powertrain", string(q.Vehicle.Powertrain)),
		zap.Int64("ex_showroom_inr", q.ExShowroomInr),
		zap.Int64("on_road_inr", q.OnRoadInr),
	)
	return q, nil
}

func (s *Service) Ownership(ctx context.Context, in OwnershipInput) (OwnershipQuote, error) {
	if err := checkOwnershipInput(in); err != nil {
		return OwnershipQuote{}, err
	}
	s.noteFallback(in.City)
	q := BuildOwnershipQuote(s.cities, in)
	if q.OnRoad.ExShowroomInr <= 0 {
		return OwnershipQuote{}, ErrInvalidExShowroom
	}
	if len(q.Assumptions.Overrides) > 0 {
		s.log.Debug("ownership inputs clamped", zap.Strings("fields", q.Assumptions.Overrides))
	}
	s.log.Debug("ownership quote",
		zap.String("city", q.OnRoad.City.Slug),
		zap.Int64("emi_inr", q.Finance.EMIInr),
		zap.Int64("effective_ownership_inr", q.Totals.EffectiveOwnershipInr),
	)
	return q, nil
}

func (s *Service) EMI(ctx context.Context, principal, annualRatePct, months float64) (LoanSchedule, error) {
	if principal <= 0 || principal > MaxAmountInr {
		return LoanSchedule{}, ErrInvalidPrincipal
	}
	if err := errors.Join(
		checkMax("annualRatePct", &annualRatePct, MaxInterestRatePct),
		checkMax("months", &months, MaxTenureMonths),
	); err != nil {
		return LoanSchedule{}, err
	}
	return BuildLoanSchedule(principal, annualRatePct, months), nil
}

func (s *Service) noteFallback(city string) {
	if _, ok := s.cities.Lookup(city); !ok {
		s.log.Debug("city not matched, using default",
			zap.String("requested", city),
			zap.String("default", s.cities.Default().Slug),
		)
	}
}
