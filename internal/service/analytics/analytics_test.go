package analytics_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/service/analytics"
)

func items(paid ...bool) []domain.SaleItem {
	out := make([]domain.SaleItem, len(paid))
	for i, p := range paid {
		out[i] = domain.SaleItem{Name: "item", IsPaid: p, Status: domain.ItemPending}
	}
	return out
}

func sale(id string, status domain.SaleStatus, price float64, lead domain.Date, paid ...bool) domain.Sale {
	return domain.Sale{
		ID:          id,
		ClientName:  "client " + id,
		ServiceType: "design",
		Status:      status,
		Price:       price,
		Quantity:    len(paid),
		Items:       items(paid...),
		LeadDate:    lead,
	}
}

var now = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) domain.Date {
	return domain.NewDate(now.AddDate(0, 0, offset))
}

func TestRevenue(t *testing.T) {
	s := sale("a", domain.StatusInProgress, 600, day(0), true, false)

	assert.Equal(t, 1200.0, analytics.PotentialRevenue(&s))
	assert.Equal(t, 600.0, analytics.CollectedRevenue(&s))
	assert.Equal(t, analytics.PaymentPartial, analytics.PaymentStatusOf(&s))

	cases := [][]bool{{}, {true}, {false, false}, {true, true, false}, {true, true, true}}
	for _, paid := range cases {
		c := sale("x", domain.StatusLead, 250, day(0), paid...)
		assert.LessOrEqual(t, analytics.CollectedRevenue(&c), analytics.PotentialRevenue(&c))
		assert.Equal(t, c.Price*float64(analytics.PaidItemCount(&c)), analytics.CollectedRevenue(&c))
	}

	unpaid := sale("u", domain.StatusLead, 100, day(0), false)
	assert.Equal(t, analytics.PaymentUnpaid, analytics.PaymentStatusOf(&unpaid))
	full := sale("f", domain.StatusPaid, 100, day(0), true, true)
	assert.Equal(t, analytics.PaymentPaid, analytics.PaymentStatusOf(&full))
}

func TestROI_ExampleScenario(t *testing.T) {
	p := domain.Project{
		ID:      "p1",
		Name:    "Spring campaign",
		Cost:    1000,
		Clients: []domain.Sale{sale("c1", domain.StatusInProgress, 600, day(0), true, false)},
	}

	f := analytics.Financials(&p)
	assert.Equal(t, 1200.0, f.PotentialRevenue)
	assert.Equal(t, 600.0, f.CollectedRevenue)
	assert.Equal(t, 200.0, f.PotentialProfit)
	assert.False(t, f.ROI.Infinite)
	assert.Equal(t, "20", f.ROI.String())

	p.Cost = 0
	f = analytics.Financials(&p)
	assert.True(t, f.ROI.Infinite)
	assert.Equal(t, "∞", f.ROI.String())

	data, err := json.Marshal(f.ROI)
	require.NoError(t, err)
	assert.JSONEq(t, `"∞"`, string(data))

	var back analytics.ROI
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Infinite)
}

func TestROI_NonZeroCostIsExact(t *testing.T) {
	for _, cost := range []float64{1, 250, 999.5, 1e6} {
		r := analytics.ComputeROI(300, cost)
		assert.False(t, r.Infinite)
		assert.Equal(t, 300*100/cost, r.Value)
	}
	assert.True(t, analytics.ComputeROI(-50, 0).Infinite)
}

func TestResolve_Windows(t *testing.T) {
	today, err := analytics.Resolve(analytics.RangeToday, now, nil, nil)
	require.NoError(t, err)
	yesterday, err := analytics.Resolve(analytics.RangeYesterday, now, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), today.Start)
	assert.Equal(t, time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC), today.End)
	assert.Equal(t, today.Start, yesterday.End, "today and yesterday touch without overlapping")
	assert.False(t, yesterday.Contains(today.Start))
	assert.True(t, today.Contains(today.Start))

	last7, _ := analytics.Resolve(analytics.RangeLast7Days, now, nil, nil)
	assert.Equal(t, time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), last7.Start)
	assert.Equal(t, now, last7.End)

	thisMonth, _ := analytics.Resolve(analytics.RangeThisMonth, now, nil, nil)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), thisMonth.Start)

	lastMonth, _ := analytics.Resolve(analytics.RangeLastMonth, now, nil, nil)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), lastMonth.Start)
	assert.True(t, lastMonth.Contains(time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)))
	assert.False(t, lastMonth.Contains(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	custom, _ := analytics.Resolve(analytics.RangeCustom, now, nil, nil)
	assert.Equal(t, time.Unix(0, 0).UTC(), custom.Start)
	assert.Equal(t, now, custom.End)

	_, err = analytics.Resolve("fortnight", now, nil, nil)
	assert.ErrorIs(t, err, analytics.ErrUnknownRange)
}

func TestResolve_AllIsSupersetOfNamedRanges(t *testing.T) {
	all, err := analytics.Resolve(analytics.RangeAll, now, nil, nil)
	require.NoError(t, err)

	named := []analytics.Range{
		analytics.RangeToday, analytics.RangeYesterday, analytics.RangeLast7Days,
		analytics.RangeThisMonth, analytics.RangeLastMonth, analytics.RangeCustom,
	}
	for _, r := range named {
		w, err := analytics.Resolve(r, now, nil, nil)
		require.NoError(t, err)
		assert.False(t, w.Start.Before(all.Start), r)
		assert.True(t, all.Contains(w.Start), r)
		last := w.End
		if w.EndExclusive {
			last = w.End.Add(-time.Nanosecond)
		}
		assert.True(t, all.Contains(last), r)
	}
}

func TestFiltered(t *testing.T) {
	projects := []domain.Project{
		{
			ID:   "p1",
			Name: "A",
			Clients: []domain.Sale{
				sale("1", domain.StatusLead, 100, day(0), false),
				sale("2", domain.StatusInProgress, 200, day(-1), true, true),
				sale("3", domain.StatusDelivered, 50, day(-1), true, false),
			},
		},
		{
			ID:   "p2",
			Name: "B",
			Clients: []domain.Sale{
				sale("4", domain.StatusPaid, 300, day(-40), true),
				sale("5", domain.StatusLead, 75, day(-2), false),
			},
		},
	}
	projects[1].Clients[1].ServiceType = "video"

	w, _ := analytics.Resolve(analytics.RangeLast7Days, now, nil, nil)
	a := analytics.Filtered(projects, w)

	assert.Equal(t, 4, a.ClientCount)
	assert.Equal(t, 450.0, a.TotalRevenue)
	assert.Equal(t, 2, a.Leads)
	assert.Equal(t, 2, a.Sales)
	assert.Equal(t, 50.0, a.ConversionRate)
	assert.Equal(t, []analytics.ServiceCount{
		{ServiceType: "design", Count: 3},
		{ServiceType: "video", Count: 1},
	}, a.ServiceDistribution)
	assert.Equal(t, []analytics.DailyRevenue{
		{Date: day(-2).String(), Amount: 0},
		{Date: day(-1).String(), Amount: 450},
		{Date: day(0).String(), Amount: 0},
	}, a.DailyRevenue)

	empty := analytics.Filtered(nil, w)
	assert.Equal(t, 0.0, empty.ConversionRate)
	assert.Empty(t, empty.DailyRevenue)
}

func TestConversionRate_RoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, 33.3, analytics.ConversionRate(1, 2))
	assert.Equal(t, 66.7, analytics.ConversionRate(2, 1))
	assert.Equal(t, 100.0, analytics.ConversionRate(3, 0))
	assert.Equal(t, 0.0, analytics.ConversionRate(0, 0))
}

func TestGlobalStats(t *testing.T) {
	projects := []domain.Project{{
		ID: "p",
		Clients: []domain.Sale{
			sale("1", domain.StatusInProgress, 100, day(0), true, false, false),
			sale("2", domain.StatusScammer, 500, day(0), false, false),
			sale("3", domain.StatusClosedLost, 70, day(0), true, false),
			sale("4", domain.StatusLead, 10, day(0), false),
		},
	}}

	st := analytics.GlobalStats(projects)
	assert.Equal(t, 170.0, st.TotalRevenue)
	assert.Equal(t, 210.0, st.PotentialRevenue)
	assert.Equal(t, 1, st.InProgress)
	assert.Equal(t, 1, st.Leads)
	assert.Equal(t, 1, st.Scammers)
	assert.Equal(t, 4, st.TotalClients)
}

func TestGoalProgress(t *testing.T) {
	goals := []domain.Goal{
		{ID: "old", Type: domain.GoalWeekly, TargetAmount: 100, StartDate: day(-30), EndDate: day(-24)},
		{ID: "month", Type: domain.GoalMonthly, TargetAmount: 1000, StartDate: day(-14), EndDate: day(3)},
		{ID: "overlap", Type: domain.GoalWeekly, TargetAmount: 10, StartDate: day(-1), EndDate: day(5)},
	}
	projects := []domain.Project{{
		Clients: []domain.Sale{
			sale("1", domain.StatusPaid, 250, day(-3), true, true),
			sale("2", domain.StatusPaid, 100, day(3), true),
			sale("3", domain.StatusPaid, 999, day(-20), true),
		},
	}}

	active := analytics.ActiveGoal(goals, now)
	require.NotNil(t, active)
	assert.Equal(t, "month", active.ID, "first matching goal wins")

	gp := analytics.ActiveProgress(goals, projects, now)
	require.NotNil(t, gp)
	assert.Equal(t, 600.0, gp.Achieved, "end date is inclusive")
	assert.Equal(t, 60, gp.Percentage)
	// End date midnight is 2 days 9.5 hours away.
	assert.Equal(t, 3, gp.DaysLeft)

	small := analytics.Progress(&goals[2], projects, now)
	assert.Equal(t, 100, small.Percentage, "percentage is capped")

	expired := analytics.Progress(&goals[0], projects, now)
	assert.Equal(t, 0, expired.DaysLeft)

	assert.Nil(t, analytics.ActiveProgress(goals[:1], projects, now))
}
