// Package marketdata validates already-fetched price series: calendar gap
// detection, statistical outlier flagging, and OHLCV bar integrity. It
// never fetches data; acquisition happens in the host application.
package marketdata

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/portfolioos/sidecar/internal/apperrors"
	"github.com/portfolioos/sidecar/internal/model"
)

// Frequency is the expected spacing of a price series.
type Frequency string

// Supported gap-detection frequencies.
const (
	Daily   Frequency = "daily"
	Monthly Frequency = "monthly"
)

// Gap describes a run of missing observations in a series.
type Gap struct {
	GapStart    model.Date `json:"gap_start"`
	GapEnd      model.Date `json:"gap_end"`
	MissingDays int        `json:"missing_days"`
}

// PricePoint is one observation of a value series.
type PricePoint struct {
	Date  model.Date `json:"date"`
	Value float64    `json:"value"`
}

// Outlier is a price point flagged for an abnormal day-over-day move.
type Outlier struct {
	Date      model.Date `json:"date"`
	Value     float64    `json:"value"`
	ZScore    float64    `json:"z_score"`
	PctChange float64    `json:"pct_change"`
}

// Bar is one OHLCV observation.
type Bar struct {
	Date   model.Date `json:"date"`
	Open   float64    `json:"open"`
	High   float64    `json:"high"`
	Low    float64    `json:"low"`
	Close  float64    `json:"close"`
	Volume float64    `json:"volume"`
}

// BarError reports one integrity violation in an OHLCV series.
type BarError struct {
	Date  model.Date `json:"date"`
	Field string     `json:"field"`
	Issue string     `json:"issue"`
	Value string     `json:"value"`
}

// DetectGaps finds missing dates in a series. Daily series expect
// consecutive weekdays (weekends are skipped; holidays are not modeled);
// monthly series expect consecutive calendar months, and MissingDays
// counts whole missing months. Fewer than two observations cannot gap.
func DetectGaps(dates []model.Date, frequency Frequency) ([]Gap, error) {
	if frequency != Daily && frequency != Monthly {
		return nil, fmt.Errorf("%w: %q (use daily or monthly)", apperrors.ErrUnsupportedFrequency, frequency)
	}
	if len(dates) < 2 {
		return []Gap{}, nil
	}

	sorted := make([]model.Date, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j].Time) })

	gaps := []Gap{}
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]

		if frequency == Daily {
			expected := nextTradingDay(prev)
			if cur.After(expected.Time) {
				gaps = append(gaps, Gap{
					GapStart:    expected,
					GapEnd:      cur.AddDays(-1),
					MissingDays: expected.DaysUntil(cur),
				})
			}
			continue
		}

		monthDiff := (cur.Year()-prev.Year())*12 + int(cur.Month()) - int(prev.Month())
		if monthDiff > 1 {
			gaps = append(gaps, Gap{
				GapStart:    prev,
				GapEnd:      cur,
				MissingDays: monthDiff - 1,
			})
		}
	}
	return gaps, nil
}

// nextTradingDay returns the next expected trading day, skipping weekends.
func nextTradingDay(d model.Date) model.Date {
	next := d.AddDays(1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDays(1)
	}
	return next
}

// DetectOutliers flags points whose day-over-day percentage change sits
// more than zThreshold standard deviations from the series mean change.
// Series with fewer than three points are never flagged.
func DetectOutliers(points []PricePoint, zThreshold float64) []Outlier {
	if len(points) < 3 {
		return []Outlier{}
	}

	pctChanges := make([]float64, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Value
		if prev == 0 {
			pctChanges[i-1] = 0
			continue
		}
		pctChanges[i-1] = (points[i].Value - prev) / prev
	}

	var mean float64
	for _, pct := range pctChanges {
		mean += pct
	}
	mean /= float64(len(pctChanges))

	var variance float64
	for _, pct := range pctChanges {
		variance += (pct - mean) * (pct - mean)
	}
	variance /= float64(len(pctChanges))
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return []Outlier{}
	}

	flagged := []Outlier{}
	for i, pct := range pctChanges {
		zScore := math.Abs(pct-mean) / stddev
		if zScore > zThreshold {
			flagged = append(flagged, Outlier{
				Date:      points[i+1].Date,
				Value:     points[i+1].Value,
				ZScore:    zScore,
				PctChange: pct,
			})
		}
	}
	return flagged
}

// ValidateOHLCV checks bar integrity: high >= low, open and close inside
// [low, high], non-negative volume, and positive prices. One BarError is
// emitted per violated field.
func ValidateOHLCV(bars []Bar) []BarError {
	errs := []BarError{}

	for _, bar := range bars {
		if bar.High < bar.Low {
			errs = append(errs, BarError{
				Date:  bar.Date,
				Field: "high/low",
				Issue: "high is less than low",
				Value: fmt.Sprintf("high=%v, low=%v", bar.High, bar.Low),
			})
		}
		if bar.Open < bar.Low || bar.Open > bar.High {
			errs = append(errs, BarError{
				Date:  bar.Date,
				Field: "open",
				Issue: "open outside [low, high] range",
				Value: fmt.Sprintf("open=%v, low=%v, high=%v", bar.Open, bar.Low, bar.High),
			})
		}
		if bar.Close < bar.Low || bar.Close > bar.High {
			errs = append(errs, BarError{
				Date:  bar.Date,
				Field: "close",
				Issue: "close outside [low, high] range",
				Value: fmt.Sprintf("close=%v, low=%v, high=%v", bar.Close, bar.Low, bar.High),
			})
		}
		if bar.Volume < 0 {
			errs = append(errs, BarError{
				Date:  bar.Date,
				Field: "volume",
				Issue: "negative volume",
				Value: fmt.Sprintf("%v", bar.Volume),
			})
		}

		prices := []struct {
			field string
			value float64
		}{
			{"open", bar.Open},
			{"high", bar.High},
			{"low", bar.Low},
			{"close", bar.Close},
		}
		for _, p := range prices {
			if p.value <= 0 {
				errs = append(errs, BarError{
					Date:  bar.Date,
					Field: p.field,
					Issue: "non-positive price",
					Value: fmt.Sprintf("%v", p.value),
				})
			}
		}
	}
	return errs
}
