package health

import (
	"cookreminder/internal/corpus"
)

// Mode selects which threshold set applies.
type Mode string

const (
	Daily  Mode = "daily"
	Weekly Mode = "weekly"
)

// Thresholds are the oil/salt cutoffs in grams. Weekly values are
// looser because a weekly pick covers two dishes; the two sets are
// independent configuration, not derived from each other.
type Thresholds struct {
	DailyOil   float64
	DailySalt  float64
	WeeklyOil  float64
	WeeklySalt float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		DailyOil:   50,
		DailySalt:  10,
		WeeklyOil:  80,
		WeeklySalt: 15,
	}
}

// defaultPositiveTags are cooking methods considered healthy on their
// own. In daily mode a recipe carrying one is eligible regardless of
// its oil/salt numbers.
var defaultPositiveTags = []string{"steamed", "blanched", "cold-mixed", "clear-soup"}

type Filter struct {
	thresholds   Thresholds
	positiveTags []string
}

func NewFilter(t Thresholds) *Filter {
	return &Filter{
		thresholds:   t,
		positiveTags: defaultPositiveTags,
	}
}

// Eligible reports whether the recipe passes the health screen for the
// given mode. Malformed entries (missing oil or salt grams) never pass;
// they are surfaced separately by the selector.
//
// Daily: numeric pass or a health-positive cooking tag. The tag is an
// override, not an extra constraint. Weekly: numeric pass only, since
// the per-dish values already aggregate two dishes.
func (f *Filter) Eligible(r corpus.Recipe, mode Mode) bool {
	if r.Malformed() {
		return false
	}

	switch mode {
	case Weekly:
		return *r.OilGrams < f.thresholds.WeeklyOil && *r.SaltGrams < f.thresholds.WeeklySalt
	default:
		if *r.OilGrams < f.thresholds.DailyOil && *r.SaltGrams < f.thresholds.DailySalt {
			return true
		}
		for _, tag := range f.positiveTags {
			if r.HasTag(tag) {
				return true
			}
		}
		return false
	}
}
