package analytics

import (
	"nexus-dashboard/internal/domain"
)

type Stats struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	PotentialRevenue float64 `json:"potentialRevenue"`
	InProgress       int     `json:"inProgress"`
	Leads            int     `json:"leads"`
	Scammers         int     `json:"scammers"`
	TotalClients     int     `json:"totalClients"`
	TotalProjects    int     `json:"totalProjects"`
}

// GlobalStats aggregates across every project. Potential revenue is the unpaid remainder of
// clients that are still live (not ClosedLost or Scammer).
func GlobalStats(projects []domain.Project) Stats {
	st := Stats{TotalProjects: len(projects)}
	for _, pc := range Flatten(projects) {
		s := pc.Sale
		st.TotalClients++
		st.TotalRevenue += CollectedRevenue(s)
		if !s.Status.IsTerminalNegative() {
			st.PotentialRevenue += UnpaidRevenue(s)
		}
		switch s.Status {
		case domain.StatusInProgress:
			st.InProgress++
		case domain.StatusLead:
			st.Leads++
		case domain.StatusScammer:
			st.Scammers++
		}
	}
	return st
}
