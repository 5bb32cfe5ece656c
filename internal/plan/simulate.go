package plan

import (
    "errors"
    "fmt"
)

// ErrUnknownPlan is returned when a simulation names a tier that is not in
// the catalog.
var ErrUnknownPlan = errors.New("unknown plan")

// meteredActionsPerMonth approximates how many billable actions one customer
// performs per month on the metered tier.
const meteredActionsPerMonth = 10

// SimulationInput describes one revenue-impact scenario: a tier, a customer
// count, the average gross marketplace volume each customer transacts per
// month, and whether customers are on annual billing.
type SimulationInput struct {
    Plan      string  `json:"plan"`
    Customers int     `json:"customers"`
    AvgGMV    float64 `json:"avg_gmv"`
    Annual    bool    `json:"annual"`
}

// SimulationResult breaks monthly revenue into its components plus the
// annualized total.
type SimulationResult struct {
    Plan               string  `json:"plan"`
    EffectiveMonthly   float64 `json:"effective_monthly_price"`
    SaaSRevenue        float64 `json:"saas_revenue"`
    MarketplaceRevenue float64 `json:"marketplace_revenue"`
    MeteredRevenue     float64 `json:"metered_revenue"`
    MonthlyRevenue     float64 `json:"monthly_revenue"`
    AnnualRevenue      float64 `json:"annual_revenue"`
}

// Simulate computes the revenue impact of moving a cohort of customers onto
// a tier.  Subscription revenue uses the annual price divided over twelve
// months when annual billing is selected and the tier offers it; the metered
// tier earns per-action revenue instead of subscription revenue; every tier
// additionally earns its transaction fee on marketplace volume.
func Simulate(in SimulationInput) (SimulationResult, error) {
    p, ok := ByName(in.Plan)
    if !ok {
        return SimulationResult{}, fmt.Errorf("%w: %q", ErrUnknownPlan, in.Plan)
    }
    if in.Customers < 0 {
        return SimulationResult{}, errors.New("customers must be non-negative")
    }
    if in.AvgGMV < 0 {
        return SimulationResult{}, errors.New("avg_gmv must be non-negative")
    }

    monthly := p.PriceMonth
    if in.Annual && p.PriceAnnual > 0 {
        monthly = p.PriceAnnual / 12
    }

    res := SimulationResult{Plan: p.Name, EffectiveMonthly: monthly}
    n := float64(in.Customers)

    if p.PricePerAction > 0 {
        res.MeteredRevenue = n * p.PricePerAction * meteredActionsPerMonth
    } else {
        res.SaaSRevenue = n * monthly
    }
    res.MarketplaceRevenue = n * in.AvgGMV * p.TransactionFee

    res.MonthlyRevenue = res.SaaSRevenue + res.MarketplaceRevenue + res.MeteredRevenue
    res.AnnualRevenue = res.MonthlyRevenue * 12
    return res, nil
}
