package api

import (
	"errors"
	"io/fs"
	"time"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
	"TrendSight/internal/indicator"
	xhttp "TrendSight/pkg/http"
	"TrendSight/pkg/util"
)

// IndicatorsResponse is the JSON view of a computed indicator set.
// Undefined points render as null so warmup gaps are explicit. A
// timeframe filter leaves the other group out entirely.
type IndicatorsResponse struct {
	Symbol string       `json:"symbol"`
	Dates  []string     `json:"dates"`
	Daily  *SeriesGroup `json:"daily,omitempty"`
	Weekly *SeriesGroup `json:"weekly,omitempty"`
	MA10   []*float64   `json:"ma_10"`
	MA20   []*float64   `json:"ma_20"`

	// Percent deviation of close from daily VWAP.
	VWAPDeviation []*float64 `json:"vwap_deviation"`
}

// SeriesGroup is one timeframe's worth of indicator series, aligned to
// the daily date axis.
type SeriesGroup struct {
	Volatility      []*float64 `json:"volatility"`
	StochK          []*float64 `json:"stoch_k"`
	StochD          []*float64 `json:"stoch_d"`
	BollingerUpper  []*float64 `json:"bollinger_upper"`
	BollingerMiddle []*float64 `json:"bollinger_middle"`
	BollingerLower  []*float64 `json:"bollinger_lower"`
	VWAP            []*float64 `json:"vwap"`
}

// NewIndicatorsResponse renders a set, optionally restricted to one
// timeframe. An empty tf keeps both groups.
func NewIndicatorsResponse(set *indicator.Set, tf domrepo.Timeframe) *IndicatorsResponse {
	dates := make([]string, len(set.Dates))
	for i, d := range set.Dates {
		dates[i] = util.FormatDate(d)
	}
	res := &IndicatorsResponse{
		Symbol:        set.Symbol,
		Dates:         dates,
		MA10:          points(set.SMAFast),
		MA20:          points(set.SMASlow),
		VWAPDeviation: points(set.DailyVWAPDev),
	}
	if tf == "" || tf == domrepo.TFDaily {
		g := newSeriesGroup(set.DailyVolatility, set.DailyStochRSI, set.DailyBollinger, set.DailyVWAP)
		res.Daily = &g
	}
	if tf == "" || tf == domrepo.TFWeekly {
		g := newSeriesGroup(set.WeeklyVolatility, set.WeeklyStochRSI, set.WeeklyBollinger, set.WeeklyVWAP)
		res.Weekly = &g
	}
	return res
}

func newSeriesGroup(vol []indicator.Point, stoch []indicator.StochRSIPoint, bands []indicator.BandsPoint, vwap []indicator.Point) SeriesGroup {
	g := SeriesGroup{
		Volatility:      points(vol),
		VWAP:            points(vwap),
		StochK:          make([]*float64, len(stoch)),
		StochD:          make([]*float64, len(stoch)),
		BollingerUpper:  make([]*float64, len(bands)),
		BollingerMiddle: make([]*float64, len(bands)),
		BollingerLower:  make([]*float64, len(bands)),
	}
	for i, p := range stoch {
		if p.Valid {
			k, d := p.K, p.D
			g.StochK[i], g.StochD[i] = &k, &d
		}
	}
	for i, b := range bands {
		if b.Valid {
			u, m, l := b.Upper, b.Middle, b.Lower
			g.BollingerUpper[i], g.BollingerMiddle[i], g.BollingerLower[i] = &u, &m, &l
		}
	}
	return g
}

func points(pts []indicator.Point) []*float64 {
	out := make([]*float64, len(pts))
	for i, p := range pts {
		if p.Valid {
			v := p.Value
			out[i] = &v
		}
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	return util.ParseDate(s)
}

// domainError maps engine errors onto HTTP statuses: short histories
// are unprocessable input, malformed bars are bad requests, a missing
// CSV file is not found.
func domainError(err error) error {
	var insufficient *models.InsufficientDataError
	if errors.As(err, &insufficient) {
		return xhttp.UnprocessableError(insufficient.Error()).WithError(err)
	}
	var invalid *models.InvalidBarError
	if errors.As(err, &invalid) {
		return xhttp.BadRequestError(invalid.Error()).WithError(err)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return xhttp.NotFoundError("no bars for symbol").WithError(err)
	}
	return err
}
