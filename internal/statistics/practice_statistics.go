package statistics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
	"github.com/at-ishikawa/verbdrill/internal/learning"
)

// Dimension is an axis attempts are grouped by.
type Dimension string

const (
	DimensionTense   Dimension = "tense"
	DimensionForm    Dimension = "form"
	DimensionPronoun Dimension = "pronoun"
	DimensionVerb    Dimension = "verb"
)

// Accuracy is the share of correct answers within a group of attempts.
type Accuracy struct {
	Key     string
	Total   int
	Correct int
}

func (a Accuracy) Incorrect() int {
	return a.Total - a.Correct
}

// Rate returns the correct ratio in [0, 1]; 0 for an empty group.
func (a Accuracy) Rate() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// Percent formats Rate for display, e.g. "66.7%".
func (a Accuracy) Percent() string {
	return fmt.Sprintf("%.1f%%", a.Rate()*100)
}

// PeriodStatistics holds accuracy for a month, e.g. "2025-01".
type PeriodStatistics struct {
	Period   string
	Accuracy Accuracy
	Sessions int
}

// WeakArea is a group with at least one mistake, ranked by error rate.
type WeakArea struct {
	Dimension Dimension
	Accuracy  Accuracy
}

// StatisticsResult holds per-period, per-dimension and overall accuracy.
type StatisticsResult struct {
	Periods             []PeriodStatistics
	Overall             Accuracy
	Sessions            int
	AverageResponseTime int64
	ByTense             []Accuracy
	ByForm              []Accuracy
	ByPronoun           []Accuracy
	ByVerb              []Accuracy
}

type periodData struct {
	accuracy Accuracy
	sessions map[string]struct{}
}

// CalculateStatistics aggregates attempts.
// It accepts optional year and month filters (0 means no filter).
func CalculateStatistics(attempts []learning.Attempt, year, month int) StatisticsResult {
	periods := make(map[string]*periodData)
	sessions := make(map[string]struct{})
	byTense := make(map[string]*Accuracy)
	byForm := make(map[string]*Accuracy)
	byPronoun := make(map[string]*Accuracy)
	byVerb := make(map[string]*Accuracy)

	var overall Accuracy
	var totalResponseTime int64
	for _, attempt := range attempts {
		if attempt.AnsweredAt.IsZero() {
			continue
		}
		if !matchesFilter(attempt.AnsweredAt.Year(), int(attempt.AnsweredAt.Month()), year, month) {
			continue
		}

		period := attempt.AnsweredAt.Format("2006-01")
		if periods[period] == nil {
			periods[period] = &periodData{
				accuracy: Accuracy{Key: period},
				sessions: make(map[string]struct{}),
			}
		}
		periods[period].accuracy.add(attempt.Correct)
		periods[period].sessions[attempt.SessionID] = struct{}{}
		sessions[attempt.SessionID] = struct{}{}

		overall.add(attempt.Correct)
		totalResponseTime += attempt.ResponseTimeMs

		group(byTense, attempt.Tense).add(attempt.Correct)
		group(byForm, attempt.Form).add(attempt.Correct)
		group(byPronoun, attempt.Pronoun).add(attempt.Correct)
		group(byVerb, attempt.Verb).add(attempt.Correct)
	}

	result := StatisticsResult{
		Overall:   overall,
		Sessions:  len(sessions),
		ByTense:   orderBy(byTense, enumOrder(conjugation.Tenses())),
		ByForm:    orderBy(byForm, enumOrder(conjugation.Forms())),
		ByPronoun: orderBy(byPronoun, enumOrder(conjugation.Pronouns())),
		ByVerb:    orderBy(byVerb, nil),
	}
	if overall.Total > 0 {
		result.AverageResponseTime = totalResponseTime / int64(overall.Total)
	}

	result.Periods = make([]PeriodStatistics, 0, len(periods))
	for period, data := range periods {
		result.Periods = append(result.Periods, PeriodStatistics{
			Period:   period,
			Accuracy: data.accuracy,
			Sessions: len(data.sessions),
		})
	}
	// Newest first
	slices.SortFunc(result.Periods, func(a, b PeriodStatistics) int {
		return cmp.Compare(b.Period, a.Period)
	})
	return result
}

// WeakestAreas returns up to limit groups across all dimensions with the highest error rate.
// Ties are broken by more mistakes, then by dimension and key. limit <= 0 returns every group.
func (r StatisticsResult) WeakestAreas(limit int) []WeakArea {
	var areas []WeakArea
	for _, dim := range []struct {
		dimension Dimension
		groups    []Accuracy
	}{
		{DimensionTense, r.ByTense},
		{DimensionForm, r.ByForm},
		{DimensionPronoun, r.ByPronoun},
		{DimensionVerb, r.ByVerb},
	} {
		for _, g := range dim.groups {
			if g.Incorrect() == 0 {
				continue
			}
			areas = append(areas, WeakArea{Dimension: dim.dimension, Accuracy: g})
		}
	}

	slices.SortStableFunc(areas, func(a, b WeakArea) int {
		if c := cmp.Compare(a.Accuracy.Rate(), b.Accuracy.Rate()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Accuracy.Incorrect(), a.Accuracy.Incorrect()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Dimension, b.Dimension); c != 0 {
			return c
		}
		return cmp.Compare(a.Accuracy.Key, b.Accuracy.Key)
	})
	if limit > 0 && len(areas) > limit {
		areas = areas[:limit]
	}
	return areas
}

func (a *Accuracy) add(correct bool) {
	a.Total++
	if correct {
		a.Correct++
	}
}

func group(groups map[string]*Accuracy, key string) *Accuracy {
	if groups[key] == nil {
		groups[key] = &Accuracy{Key: key}
	}
	return groups[key]
}

func enumOrder[T ~string](values []T) map[string]int {
	order := make(map[string]int, len(values))
	for i, v := range values {
		order[string(v)] = i
	}
	return order
}

// orderBy sorts known keys by their enumeration order and the rest alphabetically after them.
func orderBy(groups map[string]*Accuracy, order map[string]int) []Accuracy {
	result := make([]Accuracy, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	slices.SortFunc(result, func(a, b Accuracy) int {
		ai, aKnown := order[a.Key]
		bi, bKnown := order[b.Key]
		switch {
		case aKnown && bKnown:
			return cmp.Compare(ai, bi)
		case aKnown:
			return -1
		case bKnown:
			return 1
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return result
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}
