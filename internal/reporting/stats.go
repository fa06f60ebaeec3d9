// internal/reporting/stats.go
package reporting

import (
	"math"
	"sort"
	"time"

	"onboardhq.ug/internal/models"
)

// MonthlyStats is the month-over-month view on the dashboard stat cards.
type MonthlyStats struct {
	ThisMonthCount int
	LastMonthCount int
	// GrowthRate is (this-last)/last*100 rounded to one decimal. Defined as
	// 0 when last is 0.
	GrowthRate float64
}

// DepartmentShare is one row of the department breakdown, sorted by count.
type DepartmentShare struct {
	Department string
	Count      int
	Percent    float64
}

// LeaderboardEntry ranks an ambassador by recruit count. Rank is 1-based.
type LeaderboardEntry struct {
	Ambassador models.Ambassador
	Recruits   int
	Rank       int
}

// TrendPoint is one month of the onboarding trend chart.
type TrendPoint struct {
	Month string // YYYY-MM
	Label string // e.g. "Dec 2024"
	Count int
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GrowthRate returns the month-over-month growth percentage, one decimal.
func GrowthRate(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return round1(float64(current-previous) / float64(previous) * 100)
}

// monthKey reduces a YYYY-MM-DD date to its YYYY-MM prefix, or "" when the
// date is missing or malformed. Lexical month keys keep the comparison
// year-aware (a December record never counts toward the following January).
func monthKey(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// GetMonthlyStats counts records onboarded in the calendar month of now and
// in the month before it. The reference time is injected so callers (and
// tests) control what "this month" means.
func GetMonthlyStats(records []models.StaffRecord, now time.Time) MonthlyStats {
	thisKey := now.Format("2006-01")
	// AddDate normalizes day overflow (Mar 31 minus one month lands in
	// March), so step back from the first of the current month.
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastKey := firstOfMonth.AddDate(0, -1, 0).Format("2006-01")

	var stats MonthlyStats
	for _, s := range records {
		switch monthKey(s.OnboardedDate) {
		case thisKey:
			stats.ThisMonthCount++
		case lastKey:
			stats.LastMonthCount++
		}
	}
	stats.GrowthRate = GrowthRate(stats.ThisMonthCount, stats.LastMonthCount)
	return stats
}

// DepartmentBreakdown groups records by department and returns shares sorted
// by descending count. The sort is stable: departments tied on count keep
// their first-seen order.
func DepartmentBreakdown(records []models.StaffRecord) []DepartmentShare {
	counts := make(map[string]int)
	var order []string
	for _, s := range records {
		if _, seen := counts[s.Department]; !seen {
			order = append(order, s.Department)
		}
		counts[s.Department]++
	}

	total := len(records)
	shares := make([]DepartmentShare, 0, len(order))
	for _, dept := range order {
		share := DepartmentShare{Department: dept, Count: counts[dept]}
		if total > 0 {
			share.Percent = round1(float64(share.Count) / float64(total) * 100)
		}
		shares = append(shares, share)
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}

// Leaderboard ranks ambassadors by recruit count, descending. The sort is
// stable, so ties keep the input order, and Rank is the 1-based position in
// the sorted result.
func Leaderboard(ambassadors []models.Ambassador, staff []models.StaffRecord) []LeaderboardEntry {
	recruits := make(map[string]int, len(ambassadors))
	for _, s := range staff {
		recruits[s.AmbassadorID]++
	}

	entries := make([]LeaderboardEntry, 0, len(ambassadors))
	for _, amb := range ambassadors {
		entries = append(entries, LeaderboardEntry{Ambassador: amb, Recruits: recruits[amb.ID]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Recruits > entries[j].Recruits
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// TopPerformer returns the rank-1 entry, or nil for an empty leaderboard.
// On ties this is the first tied ambassador in input order, matching the
// leaderboard itself.
func TopPerformer(entries []LeaderboardEntry) *LeaderboardEntry {
	if len(entries) == 0 {
		return nil
	}
	return &entries[0]
}

// MonthlyTrend returns per-month onboarding counts for the trailing `months`
// calendar months ending with the month of now, oldest first.
func MonthlyTrend(records []models.StaffRecord, months int, now time.Time) []TrendPoint {
	if months <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, s := range records {
		if key := monthKey(s.OnboardedDate); key != "" {
			counts[key]++
		}
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	points := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := firstOfMonth.AddDate(0, -i, 0)
		key := m.Format("2006-01")
		points = append(points, TrendPoint{
			Month: key,
			Label: m.Format("Jan 2006"),
			Count: counts[key],
		})
	}
	return points
}
