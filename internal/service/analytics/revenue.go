// Package analytics holds the pure aggregation functions behind the dashboard. Nothing here
// mutates its input; every result is recomputed from the nested project view.
package analytics

import (
	"nexus-dashboard/internal/domain"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentUnpaid  PaymentStatus = "Unpaid"
	PaymentPartial PaymentStatus = "Partial"
)

func PaidItemCount(s *domain.Sale) int {
	n := 0
	for i := range s.Items {
		if s.Items[i].IsPaid {
			n++
		}
	}
	return n
}

// PotentialRevenue is the value of every item of the client at the client's unit price.
func PotentialRevenue(s *domain.Sale) float64 {
	return s.Price * float64(len(s.Items))
}

// CollectedRevenue counts paid items only, whatever their delivery status.
func CollectedRevenue(s *domain.Sale) float64 {
	return s.Price * float64(PaidItemCount(s))
}

func UnpaidRevenue(s *domain.Sale) float64 {
	return s.Price * float64(len(s.Items)-PaidItemCount(s))
}

func PaymentStatusOf(s *domain.Sale) PaymentStatus {
	paid := PaidItemCount(s)
	switch {
	case paid == 0:
		return PaymentUnpaid
	case paid == len(s.Items):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// ProjectClient pairs a client with the project that owns it.
type ProjectClient struct {
	ProjectID   string
	ProjectName string
	Sale        *domain.Sale
}

func Flatten(projects []domain.Project) []ProjectClient {
	var out []ProjectClient
	for i := range projects {
		p := &projects[i]
		for j := range p.Clients {
			out = append(out, ProjectClient{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Sale:        &p.Clients[j],
			})
		}
	}
	return out
}
