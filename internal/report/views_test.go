package report

import (
	"testing"
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func strptr(s string) *string { return &s }

func timeptr(t time.Time) *time.Time { return &t }

// fixtureRows builds three claims across two projects:
//
//	c1 (project p1, owner cust1, COMMERCIAL): PENDING -> IN_PROGRESS -> RESOLVED,
//	    opened Jan 10, resolved Jan 20, TECHNICAL throughout. The RESOLVED
//	    entry is closed at its own start, as the ledger writes it.
//	c2 (project p2, owner cust2, MAINTENANCE): PENDING -> IN_PROGRESS,
//	    opened Feb 1, BILLING.
//	c3 (project p1, owner cust1, COMMERCIAL): PENDING, opened Feb 15, TECHNICAL.
func fixtureRows() []Row {
	return []Row{
		{
			EntryID: "e1", ClaimID: "c1", ClaimDescription: "printer on fire",
			ProjectID: "p1", ProjectType: domain.ProjectTypeCommercial, ProjectOwnerID: "cust1",
			Status: domain.ClaimStatusPending, Priority: domain.ClaimPriorityMedium,
			Criticality: domain.ClaimCriticalityMinor, ClaimType: domain.ClaimTypeTechnical,
			ActorID:   "u1",
			StartDate: day(2024, time.January, 10), EndDate: timeptr(day(2024, time.January, 12)),
			CreatedAt: day(2024, time.January, 10),
		},
		{
			EntryID: "e2", ClaimID: "c1", ClaimDescription: "printer on fire",
			ProjectID: "p1", ProjectType: domain.ProjectTypeCommercial, ProjectOwnerID: "cust1",
			Status: domain.ClaimStatusInProgress, Priority: domain.ClaimPriorityHigh,
			Criticality: domain.ClaimCriticalityMajor, ClaimType: domain.ClaimTypeTechnical,
			ActorID:   "u2",
			SubareaID: strptr("sa1"), SubareaName: strptr("Hardware"),
			AreaID: strptr("a1"), AreaName: strptr("Support"),
			StartDate: day(2024, time.January, 12), EndDate: timeptr(day(2024, time.January, 20)),
			CreatedAt: day(2024, time.January, 12),
		},
		{
			EntryID: "e3", ClaimID: "c1", ClaimDescription: "printer on fire",
			ProjectID: "p1", ProjectType: domain.ProjectTypeCommercial, ProjectOwnerID: "cust1",
			Status: domain.ClaimStatusResolved, Priority: domain.ClaimPriorityHigh,
			Criticality: domain.ClaimCriticalityMajor, ClaimType: domain.ClaimTypeTechnical,
			ActorID:   "u2",
			SubareaID: strptr("sa1"), SubareaName: strptr("Hardware"),
			AreaID: strptr("a1"), AreaName: strptr("Support"),
			StartDate: day(2024, time.January, 20), EndDate: timeptr(day(2024, time.January, 20)),
			CreatedAt: day(2024, time.January, 20),
		},
		{
			EntryID: "f1", ClaimID: "c2", ClaimDescription: "wrong invoice total",
			ProjectID: "p2", ProjectType: domain.ProjectTypeMaintenance, ProjectOwnerID: "cust2",
			Status: domain.ClaimStatusPending, Priority: domain.ClaimPriorityLow,
			Criticality: domain.ClaimCriticalityMinor, ClaimType: domain.ClaimTypeBilling,
			ActorID:   "u1",
			StartDate: day(2024, time.February, 1), EndDate: timeptr(day(2024, time.February, 3)),
			CreatedAt: day(2024, time.February, 1),
		},
		{
			EntryID: "f2", ClaimID: "c2", ClaimDescription: "wrong invoice total",
			ProjectID: "p2", ProjectType: domain.ProjectTypeMaintenance, ProjectOwnerID: "cust2",
			Status: domain.ClaimStatusInProgress, Priority: domain.ClaimPriorityLow,
			Criticality: domain.ClaimCriticalityMinor, ClaimType: domain.ClaimTypeBilling,
			ActorID:   "u3",
			SubareaID: strptr("sa2"), SubareaName: strptr("Billing"),
			AreaID: strptr("a1"), AreaName: strptr("Support"),
			StartDate: day(2024, time.February, 3),
			CreatedAt: day(2024, time.February, 3),
		},
		{
			EntryID: "g1", ClaimID: "c3", ClaimDescription: "slow dashboard",
			ProjectID: "p1", ProjectType: domain.ProjectTypeCommercial, ProjectOwnerID: "cust1",
			Status: domain.ClaimStatusPending, Priority: domain.ClaimPriorityMedium,
			Criticality: domain.ClaimCriticalityMinor, ClaimType: domain.ClaimTypeTechnical,
			ActorID:   "u1",
			StartDate: day(2024, time.February, 15),
			CreatedAt: day(2024, time.February, 15),
		},
	}
}

func TestClaimsPerMonth(t *testing.T) {
	t.Run("buckets by first entry month", func(t *testing.T) {
		got := ClaimsPerMonth(fixtureRows(), Filter{})
		want := []MonthCount{
			{Month: "2024-01", Count: 1},
			{Month: "2024-02", Count: 2},
		}
		if len(got) != len(want) {
			t.Fatalf("got %d buckets, want %d: %+v", len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("bucket %d: got %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("date range applies to opened date", func(t *testing.T) {
		from := day(2024, time.February, 1)
		got := ClaimsPerMonth(fixtureRows(), Filter{From: &from})
		if len(got) != 1 || got[0].Month != "2024-02" || got[0].Count != 2 {
			t.Fatalf("got %+v, want single 2024-02 bucket with count 2", got)
		}
	})

	t.Run("claim counted in opening month even when resolved later", func(t *testing.T) {
		// c1 resolved in January but its first entry fixes the bucket.
		got := ClaimsPerMonth(fixtureRows(), Filter{})
		for _, bucket := range got {
			if bucket.Month == "2024-01" && bucket.Count != 1 {
				t.Errorf("january count = %d, want 1", bucket.Count)
			}
		}
	})
}

func TestStatusDistribution(t *testing.T) {
	t.Run("counts latest entry status per claim", func(t *testing.T) {
		got := StatusDistribution(fixtureRows(), Filter{})
		want := StatusCounts{Pending: 1, InProgress: 1, Resolved: 1}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	t.Run("earlier statuses never counted", func(t *testing.T) {
		// All three claims passed through PENDING; only c3 is still there.
		got := StatusDistribution(fixtureRows(), Filter{})
		if got.Pending != 1 {
			t.Errorf("pending = %d, want 1", got.Pending)
		}
	})

	t.Run("claim type filter applies to latest entry", func(t *testing.T) {
		technical := domain.ClaimTypeTechnical
		got := StatusDistribution(fixtureRows(), Filter{ClaimType: &technical})
		want := StatusCounts{Pending: 1, Resolved: 1}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})
}

func TestAvgResolutionByType(t *testing.T) {
	t.Run("only resolved claims counted", func(t *testing.T) {
		got := AvgResolutionByType(fixtureRows(), Filter{})
		if len(got) != 1 {
			t.Fatalf("got %d types, want 1: %+v", len(got), got)
		}
		if got[0].ClaimType != domain.ClaimTypeTechnical {
			t.Errorf("claim type = %s, want TECHNICAL", got[0].ClaimType)
		}
		if got[0].AvgDays != 10 {
			t.Errorf("avg days = %v, want 10", got[0].AvgDays)
		}
		if got[0].Count != 1 {
			t.Errorf("count = %d, want 1", got[0].Count)
		}
	})

	t.Run("fractional averages round to two decimals", func(t *testing.T) {
		rows := []Row{
			{
				EntryID: "x1", ClaimID: "cx", ProjectID: "p1",
				Status: domain.ClaimStatusPending, ClaimType: domain.ClaimTypeOther,
				StartDate: day(2024, time.March, 1), EndDate: timeptr(day(2024, time.March, 2)),
				CreatedAt: day(2024, time.March, 1),
			},
			{
				EntryID: "x2", ClaimID: "cx", ProjectID: "p1",
				Status: domain.ClaimStatusResolved, ClaimType: domain.ClaimTypeOther,
				StartDate: time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC),
				CreatedAt: time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC),
			},
		}
		got := AvgResolutionByType(rows, Filter{})
		if len(got) != 1 {
			t.Fatalf("got %d types, want 1", len(got))
		}
		// 32 hours is 1.333... days.
		if got[0].AvgDays != 1.33 {
			t.Errorf("avg days = %v, want 1.33", got[0].AvgDays)
		}
	})
}

func TestWorkloadByArea(t *testing.T) {
	// c1 is resolved, so its entries are all closed and out of workload.
	got := WorkloadByArea(fixtureRows(), Filter{})
	want := []AreaWorkload{
		{AreaID: "a1", AreaName: "Support", SubareaID: "sa2", SubareaName: "Billing", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWorkloadByArea_SkipsClosedAndSnapshotless(t *testing.T) {
	subarea := "sa9"
	rows := []Row{
		// Closed entry with a snapshot: not workload.
		{
			EntryID: "h1", ClaimID: "c9", ProjectID: "p9",
			Status: domain.ClaimStatusInProgress, ClaimType: domain.ClaimTypeOther,
			SubareaID: &subarea,
			StartDate: day(2024, time.April, 1), EndDate: timeptr(day(2024, time.April, 2)),
			CreatedAt: day(2024, time.April, 1),
		},
		// Open entry without a snapshot: no placement to report.
		{
			EntryID: "h2", ClaimID: "c9", ProjectID: "p9",
			Status: domain.ClaimStatusInProgress, ClaimType: domain.ClaimTypeOther,
			StartDate: day(2024, time.April, 2),
			CreatedAt: day(2024, time.April, 2),
		},
	}
	if got := WorkloadByArea(rows, Filter{}); len(got) != 0 {
		t.Fatalf("got %+v, want empty", got)
	}
}

func TestWorkloadByResponsible(t *testing.T) {
	// Open entries are f2 (u3) and g1 (u1); u2 only touched the resolved c1.
	got := WorkloadByResponsible(fixtureRows(), Filter{})
	want := []UserWorkload{
		{UserID: "u1", Count: 1},
		{UserID: "u3", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d users, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("user %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCommonClaimTypes(t *testing.T) {
	got := CommonClaimTypes(fixtureRows(), Filter{})
	want := []TypeCount{
		{ClaimType: domain.ClaimTypeTechnical, Count: 4},
		{ClaimType: domain.ClaimTypeBilling, Count: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d types, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("type %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuild(t *testing.T) {
	bundle := Build(fixtureRows(), Filter{})
	if len(bundle.ClaimsPerMonth) != 2 {
		t.Errorf("claims per month buckets = %d, want 2", len(bundle.ClaimsPerMonth))
	}
	if bundle.StatusCounts.Resolved != 1 {
		t.Errorf("resolved = %d, want 1", bundle.StatusCounts.Resolved)
	}
	if len(bundle.AvgResolutionByType) != 1 {
		t.Errorf("resolution types = %d, want 1", len(bundle.AvgResolutionByType))
	}
	if len(bundle.WorkloadByArea) != 1 {
		t.Errorf("area buckets = %d, want 1", len(bundle.WorkloadByArea))
	}
	if len(bundle.WorkloadByResponsible) != 2 {
		t.Errorf("user buckets = %d, want 2", len(bundle.WorkloadByResponsible))
	}
	if len(bundle.CommonClaimTypes) != 2 {
		t.Errorf("type buckets = %d, want 2", len(bundle.CommonClaimTypes))
	}
}

func TestGroupByClaim_ReordersOutOfOrderInput(t *testing.T) {
	rows := fixtureRows()
	// Reverse the slice so trails arrive newest first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	got := StatusDistribution(rows, Filter{})
	want := StatusCounts{Pending: 1, InProgress: 1, Resolved: 1}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
