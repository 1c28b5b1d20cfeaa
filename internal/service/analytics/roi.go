package analytics

import (
	"encoding/json"
	"strconv"

	"nexus-dashboard/internal/domain"
)

const InfinitySymbol = "∞"

// ROI is a percentage, or the infinity sentinel when the project has no cost.
type ROI struct {
	Value    float64
	Infinite bool
}

func (r ROI) String() string {
	if r.Infinite {
		return InfinitySymbol
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r ROI) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *ROI) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == InfinitySymbol {
		*r = ROI{Infinite: true}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*r = ROI{Value: v}
	return nil
}

type ProjectFinancials struct {
	ProjectID        string  `json:"projectId"`
	Name             string  `json:"name"`
	Cost             float64 `json:"cost"`
	ClientCount      int     `json:"clientCount"`
	PotentialRevenue float64 `json:"potentialRevenue"`
	CollectedRevenue float64 `json:"collectedRevenue"`
	PotentialProfit  float64 `json:"potentialProfit"`
	ROI              ROI     `json:"roi"`
}

func ComputeROI(profit, cost float64) ROI {
	if cost > 0 {
		return ROI{Value: profit * 100 / cost}
	}
	return ROI{Infinite: true}
}

func Financials(p *domain.Project) ProjectFinancials {
	f := ProjectFinancials{
		ProjectID:   p.ID,
		Name:        p.Name,
		Cost:        p.Cost,
		ClientCount: len(p.Clients),
	}
	for i := range p.Clients {
		f.PotentialRevenue += PotentialRevenue(&p.Clients[i])
		f.CollectedRevenue += CollectedRevenue(&p.Clients[i])
	}
	f.PotentialProfit = f.PotentialRevenue - p.Cost
	f.ROI = ComputeROI(f.PotentialProfit, p.Cost)
	return f
}

func AllFinancials(projects []domain.Project) []ProjectFinancials {
	out := make([]ProjectFinancials, 0, len(projects))
	for i := range projects {
		out = append(out, Financials(&projects[i]))
	}
	return out
}
