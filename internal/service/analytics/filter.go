package analytics

import (
	"math"
	"sort"

	"nexus-dashboard/internal/domain"
)

type ServiceCount struct {
	ServiceType string `json:"serviceType"`
	Count       int    `json:"count"`
}

type DailyRevenue struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type Analytics struct {
	Window              Window         `json:"window"`
	ClientCount         int            `json:"clientCount"`
	TotalRevenue        float64        `json:"totalRevenue"`
	Leads               int            `json:"leads"`
	Sales               int            `json:"sales"`
	ConversionRate      float64        `json:"conversionRate"`
	ServiceDistribution []ServiceCount `json:"serviceDistribution"`
	DailyRevenue        []DailyRevenue `json:"dailyRevenue"`
}

// InWindow selects the clients whose lead date falls inside w.
func InWindow(projects []domain.Project, w Window) []ProjectClient {
	loc := w.Location()
	var out []ProjectClient
	for _, pc := range Flatten(projects) {
		if pc.Sale.LeadDate.IsZero() {
			continue
		}
		if w.Contains(pc.Sale.LeadDate.In(loc)) {
			out = append(out, pc)
		}
	}
	return out
}

func Filtered(projects []domain.Project, w Window) Analytics {
	clients := InWindow(projects, w)

	a := Analytics{
		Window:              w,
		ClientCount:         len(clients),
		ServiceDistribution: []ServiceCount{},
		DailyRevenue:        []DailyRevenue{},
	}

	services := make(map[string]int)
	daily := make(map[string]float64)

	for _, pc := range clients {
		s := pc.Sale
		collected := CollectedRevenue(s)
		a.TotalRevenue += collected

		switch s.Status {
		case domain.StatusLead:
			a.Leads++
		case domain.StatusInProgress, domain.StatusDelivered:
			a.Sales++
		}

		services[s.ServiceType]++
		daily[s.LeadDate.String()] += collected
	}

	a.ConversionRate = ConversionRate(a.Sales, a.Leads)

	for name, n := range services {
		a.ServiceDistribution = append(a.ServiceDistribution, ServiceCount{ServiceType: name, Count: n})
	}
	sort.Slice(a.ServiceDistribution, func(i, j int) bool {
		if a.ServiceDistribution[i].Count != a.ServiceDistribution[j].Count {
			return a.ServiceDistribution[i].Count > a.ServiceDistribution[j].Count
		}
		return a.ServiceDistribution[i].ServiceType < a.ServiceDistribution[j].ServiceType
	})

	for day, amount := range daily {
		a.DailyRevenue = append(a.DailyRevenue, DailyRevenue{Date: day, Amount: amount})
	}
	// ISO dates sort lexically in calendar order.
	sort.Slice(a.DailyRevenue, func(i, j int) bool {
		return a.DailyRevenue[i].Date < a.DailyRevenue[j].Date
	})

	return a
}

// ConversionRate is sales/(sales+leads) as a percentage with one decimal, 0 when both are 0.
func ConversionRate(sales, leads int) float64 {
	denom := sales + leads
	if denom == 0 {
		return 0
	}
	return math.Round(float64(sales)/float64(denom)*1000) / 10
}
