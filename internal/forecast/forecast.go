// Package forecast extrapolates consumption logs into a usage total for the coming days.
package forecast

import (
	"time"

	"household/internal/domain"
)

// DefaultHorizon is the number of days summed by Predict when no horizon is given.
const DefaultHorizon = 7

// Line is an ordinary-least-squares fit y = Intercept + Slope*x.
type Line struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// Fit computes the OLS line through the points. When every x is equal (including a
// single point) the slope is zero and the intercept is the mean of y.
func Fit(xs, ys []float64) Line {
	n := float64(len(xs))
	if n == 0 {
		return Line{}
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return Line{Intercept: meanY}
	}
	slope := sxy / sxx
	return Line{Slope: slope, Intercept: meanY - slope*meanX}
}

// Predict fits quantity against day-of-year and sums the fitted values over the
// horizon days following the latest logged day. Days are counted in loc (time.Local when
// nil), so the result does not depend on the zone a store hands timestamps back in.
//
// Day-of-year restarts at 1 every January, so logs spanning a year boundary yield a
// discontinuous ordinate. This matches the historical behaviour and is not corrected.
func Predict(logs []domain.ConsumptionLog, horizon int, loc *time.Location) domain.Forecast {
	if len(logs) == 0 {
		return domain.NoData()
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if loc == nil {
		loc = time.Local
	}

	xs := make([]float64, len(logs))
	ys := make([]float64, len(logs))
	maxDay := 0
	for i, l := range logs {
		day := l.Timestamp.In(loc).YearDay()
		if day > maxDay {
			maxDay = day
		}
		xs[i] = float64(day)
		ys[i] = l.Quantity
	}

	line := Fit(xs, ys)
	var total float64
	for d := 1; d <= horizon; d++ {
		total += line.At(float64(maxDay + d))
	}
	return domain.Usage(total)
}
