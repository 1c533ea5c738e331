// README: Pricing handlers: city list, on-road quote, ownership quote and EMI.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motohub/internal/modules/pricing"
	"motohub/internal/types"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

type onRoadReq struct {
	Bike                 pricing.VehicleInput `json:"bike"`
	City                 string               `json:"city"`
	AccessoriesInr       types.Number         `json:"accessoriesInr"`
	ExtendedWarrantyInr  types.Number         `json:"extendedWarrantyInr"`
	IncludeHypothecation types.Number         `json:"includeHypothecation"`
}

func (r onRoadReq) input() pricing.OnRoadInput {
	return pricing.OnRoadInput{
		Vehicle:              r.Bike,
		City:                 r.City,
		AccessoriesInr:       r.AccessoriesInr.Value,
		ExtendedWarrantyInr:  r.ExtendedWarrantyInr.Value,
		IncludeHypothecation: r.IncludeHypothecation.Value != 0,
	}
}

type ownershipReq struct {
	onRoadReq
	UsageKmPerMonth        types.Number `json:"usageKmPerMonth"`
	Years                  types.Number `json:"years"`
	DownPaymentPct         types.Number `json:"downPaymentPct"`
	InterestRatePct        types.Number `json:"interestRatePct"`
	TenureMonths           types.Number `json:"tenureMonths"`
	ServiceCostPerYearInr  types.Number `json:"serviceCostPerYearInr"`
	InsurancePerYearInr    types.Number `json:"insurancePerYearInr"`
	FuelPricePerL          types.Number `json:"fuelPricePerL"`
	EVCostPerKm            types.Number `json:"evCostPerKm"`
	DepreciationPctPerYear types.Number `json:"depreciationPctPerYear"`
}

func (r ownershipReq) input() pricing.OwnershipInput {
	return pricing.OwnershipInput{
		Vehicle:                r.Bike,
		City:                   r.City,
		AccessoriesInr:         r.AccessoriesInr.Value,
		ExtendedWarrantyInr:    r.ExtendedWarrantyInr.Value,
		UsageKmPerMonth:        r.UsageKmPerMonth.Ptr(),
		Years:                  r.Years.Ptr(),
		DownPaymentPct:         r.DownPaymentPct.Ptr(),
		InterestRatePct:        r.InterestRatePct.Ptr(),
		TenureMonths:           r.TenureMonths.Ptr(),
		ServiceCostPerYearInr:  r.ServiceCostPerYearInr.Ptr(),
		InsurancePerYearInr:    r.InsurancePerYearInr.Ptr(),
		FuelPricePerL:          r.FuelPricePerL.Ptr(),
		EVCostPerKm:            r.EVCostPerKm.Ptr(),
		DepreciationPctPerYear: r.DepreciationPctPerYear.Ptr(),
	}
}

type emiReq struct {
	PrincipalInr  types.Number `json:"principalInr"`
	AnnualRatePct types.Number `json:"annualRatePct"`
	Months        types.Number `json:"months"`
}

// Cities handles GET /api/pricing/cities.
func (h *PricingHandler) Cities(c *gin.Context) {
	cities := h.pricing.Cities(c.Request.Context())
	writeJSON(c, http.StatusOK, listResponse{Success: true, Data: cities, Count: len(cities)})
}

// OnRoad handles POST /api/pricing/on-road.
func (h *PricingHandler) OnRoad(c *gin.Context) {
	var req onRoadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	quote, err := h.pricing.OnRoad(c.Request.Context(), req.input())
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeData(c, quote)
}

// Ownership handles POST /api/pricing/ownership.
func (h *PricingHandler) Ownership(c *gin.Context) {
	var req ownershipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	quote, err := h.pricing.Ownership(c.Request.Context(), req.input())
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeData(c, quote)
}

// EMI handles POST /api/pricing/emi.
func (h *PricingHandler) EMI(c *gin.Context) {
	var req emiReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	schedule, err := h.pricing.EMI(c.Request.Context(),
		req.PrincipalInr.Value,
		req.AnnualRatePct.Or(pricing.DefaultInterestRatePct),
		req.Months.Or(pricing.DefaultLoanMonths),
	)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeData(c, schedule)
}
