package planning_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/planning"
)

func order(date, store, item string, qty int, status models.Status) models.Order {
	return models.Order{
		Date: date, DeliveryTime: "08:00", StoreName: store,
		ItemName: item, Quantity: qty, Status: status,
	}
}

func TestEligibleStores_ExcludesOnlyHolidayDate(t *testing.T) {
	stores := []models.Store{
		{StoreName: "A"},
		{StoreName: "B", HolidayDates: []string{"2024-05-01"}},
		{StoreName: "C", HolidayDates: []string{"2024-05-02"}},
	}

	got := planning.EligibleStores(stores, "2024-05-01")
	require.Equal(t, []string{"A", "C"}, names(got))

	for _, d := range []string{"2024-04-30", "2024-05-03", "2025-05-01"} {
		require.Contains(t, names(planning.EligibleStores(stores, d)), "B", d)
	}
	require.Equal(t, []string{"A", "B"}, names(planning.EligibleStores(stores, "2024-05-02")))
}

func TestEligibleStores_Empty(t *testing.T) {
	require.Empty(t, planning.EligibleStores(nil, "2024-05-01"))
}

func names(stores []models.Store) []string {
	out := make([]string, 0, len(stores))
	for _, s := range stores {
		out = append(out, s.StoreName)
	}
	return out
}

func TestFindConflicts_MatchesExactTripleRegardlessOfQuantityAndOrigin(t *testing.T) {
	existing := []models.Order{
		order("2024-05-01", "North", "noodle", 5, models.StatusPending),
		order("2024-05-01", "North", "bun", 1, models.StatusCompleted),
		order("2024-05-02", "North", "dumpling", 3, models.StatusPending),
		order("2024-05-01", "South", "dumpling", 3, models.StatusPending),
	}
	staged := order("2024-05-01", "North", "wonton", 9, models.StatusPending)
	staged.IsLocal = true
	existing = append(existing, staged)

	rows := []planning.CandidateRow{
		{ItemName: "noodle", Quantity: 99},
		{ItemName: "bun", Quantity: 1},
		{ItemName: "dumpling", Quantity: 3},
		{ItemName: "wonton", Quantity: 1},
		{ItemName: "rice", Quantity: 1},
	}

	got := planning.FindConflicts(rows, existing, "2024-05-01", "North")
	require.Equal(t, []planning.CandidateRow{
		{ItemName: "noodle", Quantity: 99},
		{ItemName: "bun", Quantity: 1},
		{ItemName: "wonton", Quantity: 1},
	}, got)
}

func TestFindConflicts_Symmetry_Randomized(t *testing.T) {
	f := gofakeit.New(7)
	dates := []string{"2024-05-01", "2024-05-02"}
	stores := []string{"North", "South"}
	items := []string{"noodle", "bun", "dumpling"}

	var existing []models.Order
	for i := 0; i < 12; i++ {
		o := order(
			f.RandomString(dates), f.RandomString(stores), f.RandomString(items),
			f.Number(1, 20), models.StatusPending,
		)
		o.IsLocal = f.Bool()
		existing = append(existing, o)
	}

	for _, d := range dates {
		for _, s := range stores {
			for _, it := range items {
				want := false
				for _, o := range existing {
					if o.Key() == (models.OrderKey{Date: d, StoreName: s, ItemName: it}) {
						want = true
					}
				}
				got := planning.FindConflicts([]planning.CandidateRow{{ItemName: it, Quantity: 1}}, existing, d, s)
				require.Equal(t, want, len(got) == 1, "%s/%s/%s", d, s, it)
			}
		}
	}
}

func TestAggregate_ExcludesCompleted(t *testing.T) {
	orders := []models.Order{
		order("2024-05-01", "North", "noodle", 5, models.StatusPending),
		order("2024-05-01", "South", "noodle", 3, models.StatusPending),
		order("2024-05-01", "North", "noodle", 2, models.StatusCompleted),
		order("2024-05-02", "North", "bun", 4, models.StatusPending),
	}

	got := planning.Aggregate(orders)
	require.Equal(t, planning.Summary{
		"2024-05-01": {"noodle": 8},
		"2024-05-02": {"bun": 4},
	}, got)
}

func TestAggregate_IncludesStaged(t *testing.T) {
	staged := order("2024-05-01", "North", "noodle", 4, models.StatusPending)
	staged.IsLocal = true

	got := planning.Aggregate([]models.Order{staged, order("2024-05-01", "East", "noodle", 1, models.StatusPending)})
	require.Equal(t, 5, got["2024-05-01"]["noodle"])
}

func TestPlan_OrdersDatesAndCatalogItems(t *testing.T) {
	s := planning.Summary{
		"2024-05-02": {"bun": 4, "mystery": 1, "noodle": 2},
		"2024-05-01": {"noodle": 8, "aaa": 2},
	}
	products := []models.Product{
		{ItemName: "noodle", Unit: "kg"},
		{ItemName: "bun", Unit: "pcs"},
	}

	plan := planning.Plan(s, products)
	require.Len(t, plan, 2)
	require.Equal(t, "2024-05-01", plan[0].Date)
	require.Equal(t, []planning.PlanLine{
		{ItemName: "noodle", Unit: "kg", Quantity: 8},
		{ItemName: "aaa", Quantity: 2},
	}, plan[0].Lines)
	require.Equal(t, "2024-05-02", plan[1].Date)
	require.Equal(t, []planning.PlanLine{
		{ItemName: "noodle", Unit: "kg", Quantity: 2},
		{ItemName: "bun", Unit: "pcs", Quantity: 4},
		{ItemName: "mystery", Quantity: 1},
	}, plan[1].Lines)
}

func TestSchedule_GroupsByDateAndTime(t *testing.T) {
	a := order("2024-05-02", "North", "noodle", 1, models.StatusPending)
	a.DeliveryTime = "10:00"
	b := order("2024-05-02", "South", "bun", 1, models.StatusPending)
	b.DeliveryTime = "07:30"
	b.IsLocal = true
	c := order("2024-05-01", "East", "noodle", 1, models.StatusPending)

	days := planning.Schedule([]models.Order{a, b, c})
	require.Len(t, days, 2)
	require.Equal(t, "2024-05-01", days[0].Date)
	require.Equal(t, "2024-05-02", days[1].Date)
	require.Equal(t, "South", days[1].Orders[0].StoreName)
	require.Equal(t, "North", days[1].Orders[1].StoreName)
	require.Equal(t, 1, days[1].Staged)
}
