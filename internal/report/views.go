package report

import (
	"math"
	"sort"

	"github.com/spec-kit/claims-service/internal/domain"
)

// MonthCount is one bucket of the claims-per-month view.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// StatusCounts buckets claims by the status of their latest entry. Closed is
// reported only when present.
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed,omitempty"`
}

// ResolutionByType is the average resolution time for one claim type.
type ResolutionByType struct {
	ClaimType domain.ClaimType `json:"claimType"`
	AvgDays   float64          `json:"avgDays"`
	Count     int              `json:"count"`
}

// AreaWorkload counts open entries per (area, subarea) snapshot.
type AreaWorkload struct {
	AreaID      string `json:"areaId"`
	AreaName    string `json:"areaName"`
	SubareaID   string `json:"subareaId"`
	SubareaName string `json:"subareaName"`
	Count       int    `json:"count"`
}

// UserWorkload counts open entries per acting user.
type UserWorkload struct {
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

// TypeCount is a claim-type frequency bucket.
type TypeCount struct {
	ClaimType domain.ClaimType `json:"claimType"`
	Count     int              `json:"count"`
}

// Bundle aggregates the six report views.
type Bundle struct {
	ClaimsPerMonth        []MonthCount       `json:"claimsPerMonth"`
	StatusCounts          StatusCounts       `json:"statusCounts"`
	AvgResolutionByType   []ResolutionByType `json:"avgResolutionByType"`
	WorkloadByArea        []AreaWorkload     `json:"workloadByArea"`
	WorkloadByResponsible []UserWorkload     `json:"workloadByResponsible"`
	CommonClaimTypes      []TypeCount        `json:"commonClaimTypes"`
}

// Build runs all six views over the row set under the filter.
func Build(rows []Row, filter Filter) Bundle {
	return Bundle{
		ClaimsPerMonth:        ClaimsPerMonth(rows, filter),
		StatusCounts:          StatusDistribution(rows, filter),
		AvgResolutionByType:   AvgResolutionByType(rows, filter),
		WorkloadByArea:        WorkloadByArea(rows, filter),
		WorkloadByResponsible: WorkloadByResponsible(rows, filter),
		CommonClaimTypes:      CommonClaimTypes(rows, filter),
	}
}

func matchClaimGroup(claim *claimRows, filter Filter) bool {
	return filter.matchClaim(claim.first()) && filter.matchInvolvement(claim)
}

// ClaimsPerMonth groups claims by the UTC calendar month of their first
// entry's start date. The first entry is the authoritative opened timestamp,
// not the claim row's creation time.
func ClaimsPerMonth(rows []Row, filter Filter) []MonthCount {
	groups := groupByClaim(rows)
	counts := make(map[string]int)
	for i := range groups {
		claim := &groups[i]
		if !matchClaimGroup(claim, filter) {
			continue
		}
		if filter.ClaimType != nil && claim.latest().ClaimType != *filter.ClaimType {
			continue
		}
		opened := claim.first().StartDate
		if !filter.inRange(opened) {
			continue
		}
		counts[opened.UTC().Format("2006-01")]++
	}

	result := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		result = append(result, MonthCount{Month: month, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

// StatusDistribution counts claims by the status of the entry most recently
// created, regardless of whether that entry is still open.
func StatusDistribution(rows []Row, filter Filter) StatusCounts {
	groups := groupByClaim(rows)
	var counts StatusCounts
	for i := range groups {
		claim := &groups[i]
		if !matchClaimGroup(claim, filter) {
			continue
		}
		if !filter.inRange(claim.first().StartDate) {
			continue
		}
		latest := claim.latest()
		if filter.ClaimType != nil && latest.ClaimType != *filter.ClaimType {
			continue
		}
		switch latest.Status {
		case domain.ClaimStatusPending:
			counts.Pending++
		case domain.ClaimStatusInProgress:
			counts.InProgress++
		case domain.ClaimStatusResolved:
			counts.Resolved++
		case domain.ClaimStatusClosed:
			counts.Closed++
		}
	}
	return counts
}

// AvgResolutionByType averages, per claim type, the days between the first
// and last entry start dates of claims that reached RESOLVED at some point.
// The last entry's type classifies the claim.
func AvgResolutionByType(rows []Row, filter Filter) []ResolutionByType {
	type accumulator struct {
		totalDays float64
		count     int
	}
	groups := groupByClaim(rows)
	acc := make(map[domain.ClaimType]*accumulator)

	for i := range groups {
		claim := &groups[i]
		if !matchClaimGroup(claim, filter) {
			continue
		}
		if !claim.hasStatus(domain.ClaimStatusResolved) {
			continue
		}
		first := claim.first()
		last := claim.latest()
		// The closing moment is the last entry's start; the date range
		// filters on it.
		if !filter.inRange(last.StartDate) {
			continue
		}
		if filter.ClaimType != nil && last.ClaimType != *filter.ClaimType {
			continue
		}
		days := last.StartDate.Sub(first.StartDate).Hours() / 24
		bucket := acc[last.ClaimType]
		if bucket == nil {
			bucket = &accumulator{}
			acc[last.ClaimType] = bucket
		}
		bucket.totalDays += days
		bucket.count++
	}

	result := make([]ResolutionByType, 0, len(acc))
	for claimType, bucket := range acc {
		result = append(result, ResolutionByType{
			ClaimType: claimType,
			AvgDays:   round2(bucket.totalDays / float64(bucket.count)),
			Count:     bucket.count,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClaimType < result[j].ClaimType })
	return result
}

// WorkloadByArea counts currently open entries carrying an organizational
// snapshot, grouped by (area, subarea). Names come from the snapshot, so the
// view is stable under later directory renames.
func WorkloadByArea(rows []Row, filter Filter) []AreaWorkload {
	type key struct {
		areaID    string
		subareaID string
	}
	counts := make(map[key]*AreaWorkload)
	for i := range rows {
		row := &rows[i]
		if !row.Open() || row.SubareaID == nil {
			continue
		}
		if !filter.matchEntry(row) || !filter.matchClaim(row) {
			continue
		}
		if filter.ClaimType != nil && row.ClaimType != *filter.ClaimType {
			continue
		}
		k := key{areaID: strValue(row.AreaID), subareaID: *row.SubareaID}
		bucket := counts[k]
		if bucket == nil {
			bucket = &AreaWorkload{
				AreaID:      strValue(row.AreaID),
				AreaName:    strValue(row.AreaName),
				SubareaID:   *row.SubareaID,
				SubareaName: strValue(row.SubareaName),
			}
			counts[k] = bucket
		}
		bucket.Count++
	}

	result := make([]AreaWorkload, 0, len(counts))
	for _, bucket := range counts {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		if result[i].AreaID != result[j].AreaID {
			return result[i].AreaID < result[j].AreaID
		}
		return result[i].SubareaID < result[j].SubareaID
	})
	return result
}

// WorkloadByResponsible counts currently open entries per acting user.
func WorkloadByResponsible(rows []Row, filter Filter) []UserWorkload {
	counts := make(map[string]int)
	for i := range rows {
		row := &rows[i]
		if !row.Open() {
			continue
		}
		if !filter.matchEntry(row) || !filter.matchClaim(row) {
			continue
		}
		if filter.ClaimType != nil && row.ClaimType != *filter.ClaimType {
			continue
		}
		counts[row.ActorID]++
	}

	result := make([]UserWorkload, 0, len(counts))
	for userID, count := range counts {
		result = append(result, UserWorkload{UserID: userID, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].UserID < result[j].UserID
	})
	return result
}

// CommonClaimTypes counts claim types across the filtered entry population.
// Every entry counts, not one per claim.
func CommonClaimTypes(rows []Row, filter Filter) []TypeCount {
	counts := make(map[domain.ClaimType]int)
	for i := range rows {
		row := &rows[i]
		if !filter.matchEntry(row) || !filter.matchClaim(row) {
			continue
		}
		if filter.ClaimType != nil && row.ClaimType != *filter.ClaimType {
			continue
		}
		counts[row.ClaimType]++
	}

	result := make([]TypeCount, 0, len(counts))
	for claimType, count := range counts {
		result = append(result, TypeCount{ClaimType: claimType, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].ClaimType < result[j].ClaimType
	})
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
