package selector

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"

	"cookreminder/internal/corpus"
	"cookreminder/internal/health"
)

// ErrNoEligibleDish means no recipe (or no recipe of a required
// category) passed the health filter, even after relaxing the
// repeat-avoidance constraint. The caller decides whether to retry
// with looser thresholds or abort the run.
var ErrNoEligibleDish = errors.New("no eligible dish")

// Report collects non-fatal problems from a selection pass. Malformed
// entries (missing oil or salt grams) are skipped and listed here so
// one bad entry never aborts a batch.
type Report struct {
	Malformed []string // recipe ids
}

// Selector picks dishes from a corpus under health constraints. It
// holds no state between calls: history is passed in by the caller and
// randomness comes from the supplied generator, so selection is
// reproducible under a fixed seed.
type Selector struct {
	filter *health.Filter
}

func New(f *health.Filter) *Selector {
	return &Selector{filter: f}
}

// Daily picks a single dish eligible under daily thresholds, avoiding
// ids present in history when alternatives exist. History only
// suppresses repeats; it never blocks selection entirely.
func (s *Selector) Daily(recipes []corpus.Recipe, history []string, rng *rand.Rand) (corpus.Recipe, Report, error) {
	wellformed, report := splitMalformed(recipes)

	eligible := lo.Filter(wellformed, func(r corpus.Recipe, _ int) bool {
		return s.filter.Eligible(r, health.Daily)
	})
	if len(eligible) == 0 {
		return corpus.Recipe{}, report, fmt.Errorf("daily selection: %w", ErrNoEligibleDish)
	}

	pool := excludeHistory(eligible, history)
	return pool[rng.IntN(len(pool))], report, nil
}

// WeeklyPair picks one meat and one vegetable dish eligible under
// weekly thresholds. The two draws are independent; entries without a
// meat/vegetable classification never take part in pairing.
func (s *Selector) WeeklyPair(recipes []corpus.Recipe, history []string, rng *rand.Rand) (meat, veg corpus.Recipe, report Report, err error) {
	wellformed, report := splitMalformed(recipes)

	eligible := lo.Filter(wellformed, func(r corpus.Recipe, _ int) bool {
		return s.filter.Eligible(r, health.Weekly)
	})

	meats := lo.Filter(eligible, func(r corpus.Recipe, _ int) bool { return r.Category == corpus.Meat })
	vegs := lo.Filter(eligible, func(r corpus.Recipe, _ int) bool { return r.Category == corpus.Vegetable })

	if len(meats) == 0 {
		return corpus.Recipe{}, corpus.Recipe{}, report, fmt.Errorf("weekly selection: no meat dish: %w", ErrNoEligibleDish)
	}
	if len(vegs) == 0 {
		return corpus.Recipe{}, corpus.Recipe{}, report, fmt.Errorf("weekly selection: no vegetable dish: %w", ErrNoEligibleDish)
	}

	meatPool := excludeHistory(meats, history)
	vegPool := excludeHistory(vegs, history)
	return meatPool[rng.IntN(len(meatPool))], vegPool[rng.IntN(len(vegPool))], report, nil
}

// excludeHistory drops recently selected ids, relaxing to the full
// eligible set when the exclusion would leave nothing to pick.
func excludeHistory(eligible []corpus.Recipe, history []string) []corpus.Recipe {
	if len(history) == 0 {
		return eligible
	}
	recent := make(map[string]struct{}, len(history))
	for _, id := range history {
		recent[id] = struct{}{}
	}
	fresh := lo.Filter(eligible, func(r corpus.Recipe, _ int) bool {
		_, ok := recent[r.ID]
		return !ok
	})
	if len(fresh) == 0 {
		return eligible
	}
	return fresh
}

func splitMalformed(recipes []corpus.Recipe) ([]corpus.Recipe, Report) {
	var report Report
	wellformed := make([]corpus.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.Malformed() {
			report.Malformed = append(report.Malformed, r.ID)
			continue
		}
		wellformed = append(wellformed, r)
	}
	return wellformed, report
}
