package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/tdmsuite/insights/internal/plan"
)

// PlanHandler serves the static pricing catalog, the revenue model
// reference, and the revenue-impact simulator.
type PlanHandler struct{}

func NewPlanHandler() *PlanHandler { return &PlanHandler{} }

// List returns the pricing plan catalog.
func (h *PlanHandler) List(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"plans": plan.Catalog()})
}

type featureModelsPart struct {
    Feature string              `json:"feature"`
    Models  []plan.RevenueModel `json:"models"`
}

// RevenueModels returns the graded reference plus the per-feature
// enablement, collapsed from what used to be a copy in every feature.
func (h *PlanHandler) RevenueModels(c echo.Context) error {
    features := make([]featureModelsPart, 0, len(plan.Features()))
    for _, f := range plan.Features() {
        features = append(features, featureModelsPart{Feature: f, Models: plan.EnabledModels(f)})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "reference": plan.ReferenceModels(),
        "features":  features,
    })
}

// Simulate computes the revenue impact of a plan/cohort scenario.
func (h *PlanHandler) Simulate(c echo.Context) error {
    var in plan.SimulationInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    res, err := plan.Simulate(in)
    if err != nil {
        if errors.Is(err, plan.ErrUnknownPlan) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, res)
}
