package services

import (
	"math"
	"time"

	"github.com/blogem/timesheet/models"
)

var timeNow = func() time.Time {
	return time.Now()
}

// ReportRange is a validated date window for timesheet reporting
type ReportRange struct {
	Start    time.Time
	End      time.Time
	Filtered bool
}

// ResolveRange produces the reporting window for raw start/end filter
// values. With no filter (either value absent) it returns the Monday-Sunday
// week containing today, unfiltered. With both values present it validates
// them and never partially applies a bad range.
//
// A range that starts in the future but ends today or earlier is accepted;
// only a range lying entirely in the future is rejected.
func ResolveRange(startStr, endStr string, today time.Time) (ReportRange, error) {
	if startStr == "" || endStr == "" {
		week := models.GetWeekContaining(today)
		return ReportRange{Start: week.Start, End: week.End}, nil
	}

	start, err := models.ParseDate(startStr)
	if err != nil {
		return ReportRange{}, ErrInvalidFormat
	}

	end, err := models.ParseDate(endStr)
	if err != nil {
		return ReportRange{}, ErrInvalidFormat
	}

	if start.After(end) {
		return ReportRange{}, ErrInvertedRange
	}

	// Compare calendar dates as YYYY-MM-DD strings so the caller's
	// location never shifts the boundary
	todayStr := models.FormatDate(today)
	if models.FormatDate(start) > todayStr && models.FormatDate(end) > todayStr {
		return ReportRange{}, ErrFutureRange
	}

	return ReportRange{Start: start, End: end, Filtered: true}, nil
}

// Summarize reduces a set of time entries to total and average productive
// hours. The average is rounded to 2 decimal places and is 0 for an empty
// set. The result depends only on the entries, not their order.
func Summarize(entries []models.TimeEntry) (totalHours, averageHours float64) {
	for i := range entries {
		totalHours += entries[i].TotalHours()
	}

	if len(entries) == 0 {
		return 0, 0
	}

	averageHours = math.Round(totalHours/float64(len(entries))*100) / 100
	return totalHours, averageHours
}
