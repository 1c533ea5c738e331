// README: City profile store backed by PostgreSQL (table city_profiles).
package pricing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const profileColumns = `slug, name, state, rto_pct, ev_rto_pct, insurance_pct, green_cess_pct,
	registration_inr, handling_inr, hsrp_inr, fastag_inr, smart_card_inr,
	hypothecation_inr, road_safety_inr, fuel_price_per_l, ev_cost_per_km`

// ListProfiles returns every stored profile ordered by slug.
func (s *Store) ListProfiles(ctx context.Context) ([]CityProfile, error) {
	rows, err := s.db.Query(ctx, `SELECT `+profileColumns+` FROM city_profiles ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("query city_profiles: %w", err)
	}
	defer rows.Close()

	var out []CityProfile
	for rows.Next() {
		var p CityProfile
		if err := rows.Scan(
			&p.Slug, &p.Name, &p.State, &p.RTOPct, &p.EVRTOPct, &p.InsurancePct, &p.GreenCessPct,
			&p.RegistrationInr, &p.HandlingInr, &p.HSRPInr, &p.FastagInr, &p.SmartCardInr,
			&p.HypothecationInr, &p.RoadSafetyInr, &p.FuelPricePerL, &p.EVCostPerKm,
		); err != nil {
			return nil, fmt.Errorf("scan city_profiles: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate city_profiles: %w", err)
	}
	return out, nil
}

// UpsertProfiles inserts or replaces profiles in one transaction.
func (s *Store) UpsertProfiles(ctx context.Context, profiles []CityProfile) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		for _, p := range profiles {
			_, err := tx.Exec(ctx, `
				INSERT INTO city_profiles (`+profileColumns+`, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
				ON CONFLICT (slug) DO UPDATE SET
					name = EXCLUDED.name,
					state = EXCLUDED.state,
					rto_pct = EXCLUDED.rto_pct,
					ev_rto_pct = EXCLUDED.ev_rto_pct,
					insurance_pct = EXCLUDED.insurance_pct,
					green_cess_pct = EXCLUDED.green_cess_pct,
					registration_inr = EXCLUDED.registration_inr,
					handling_inr = EXCLUDED.handling_inr,
					hsrp_inr = EXCLUDED.hsrp_inr,
					fastag_inr = EXCLUDED.fastag_inr,
					smart_card_inr = EXCLUDED.smart_card_inr,
					hypothecation_inr = EXCLUDED.hypothecation_inr,
					road_safety_inr = EXCLUDED.road_safety_inr,
					fuel_price_per_l = EXCLUDED.fuel_price_per_l,
					ev_cost_per_km = EXCLUDED.ev_cost_per_km,
					updated_at = NOW()
			`,
				normalizeCityKey(p.Slug), p.Name, p.State, p.RTOPct, p.EVRTOPct, p.InsurancePct, p.GreenCessPct,
				p.RegistrationInr, p.HandlingInr, p.HSRPInr, p.FastagInr, p.SmartCardInr,
				p.HypothecationInr, p.RoadSafetyInr, p.FuelPricePerL, p.EVCostPerKm,
			)
			if err != nil {
				return fmt.Errorf("upsert city %s: %w", p.Slug, err)
			}
		}
		return nil
	})
}
