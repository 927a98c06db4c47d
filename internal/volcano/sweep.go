package volcano

import (
	"fmt"
	"math"
	"sort"
)

// SweepMetric selects what the sweep records per day.
type SweepMetric string

const (
	// Dragon teeth over all ten floors.
	MetricDragonTeeth SweepMetric = "dragon_teeth"
	// Rare chests over all ten floors.
	MetricRareChests SweepMetric = "rare_chests"
	// Mushroom and monster floors in the day's layout sequence.
	MetricSpecialFloors SweepMetric = "special_floors"
)

// maxSweepDays bounds one sweep; a full save rarely passes ten in-game years.
const maxSweepDays = 3360

// SweepParams describes one day-range sweep.
type SweepParams struct {
	FromDay uint32
	ToDay   uint32 // inclusive
	Metric  SweepMetric

	// ProbeLuck is the luck multiplier each day is evaluated at; nil means the domain maximum.
	ProbeLuck *float64
}

// DaySample is the metric value for one day.
type DaySample struct {
	Day   uint32 `json:"day"`
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Stats summarizes sweep results.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// SweepResult is the per-day series and its summary.
type SweepResult struct {
	Metric    SweepMetric `json:"metric"`
	ProbeLuck float64     `json:"probe_luck"`
	Days      []DaySample `json:"days"`
	Stats     Stats       `json:"stats"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}

// measure evaluates the metric on one day's prediction at luck.
func measure(p *Prediction, metric SweepMetric, luck float64) (int, error) {
	count := 0
	for _, f := range p.Floors {
		switch metric {
		case MetricSpecialFloors:
			layout, ok := ValueAt(f.Layouts, luck)
			if !ok {
				return 0, fmt.Errorf("%w: no layout at luck %v on floor %d", ErrInvalidLuckRange, luck, f.Level)
			}
			if IsMushroomFloor(layout) || IsMonsterFloor(layout) {
				count++
			}
		case MetricDragonTeeth, MetricRareChests:
			loot, ok := ValueAt(f.Loot, luck)
			if !ok {
				return 0, fmt.Errorf("%w: no loot at luck %v on floor %d", ErrInvalidLuckRange, luck, f.Level)
			}
			want := DragonTooth
			if metric == MetricRareChests {
				want = RareChest
			}
			for _, g := range loot {
				if g.Kind == want {
					count++
				}
			}
		default:
			return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidSettings, metric)
		}
	}
	return count, nil
}

// Sweep predicts every day in [FromDay, ToDay] with the other settings fixed and records the metric.
func (e *Engine) Sweep(s GameSettings, sp SweepParams) (*SweepResult, error) {
	if sp.FromDay < 1 || sp.ToDay < sp.FromDay {
		return nil, fmt.Errorf("%w: day range [%d, %d]", ErrInvalidSettings, sp.FromDay, sp.ToDay)
	}
	if sp.ToDay-sp.FromDay >= maxSweepDays {
		return nil, fmt.Errorf("%w: at most %d days per sweep", ErrInvalidSettings, maxSweepDays)
	}
	switch sp.Metric {
	case MetricDragonTeeth, MetricRareChests, MetricSpecialFloors:
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidSettings, sp.Metric)
	}
	lo, hi := s.LuckDomain()
	luck := hi
	if sp.ProbeLuck != nil {
		luck = *sp.ProbeLuck
		if math.IsNaN(luck) || luck < lo || luck > hi {
			return nil, fmt.Errorf("%w: probe %v outside [%v, %v]", ErrInvalidLuckRange, luck, lo, hi)
		}
	}

	res := &SweepResult{Metric: sp.Metric, ProbeLuck: luck}
	samples := make([]int, 0, sp.ToDay-sp.FromDay+1)
	for day := sp.FromDay; ; day++ {
		ds := s
		ds.DaysPlayed = day
		p, err := e.Predict(ds)
		if err != nil {
			return nil, err
		}
		v, err := measure(p, sp.Metric, luck)
		if err != nil {
			return nil, err
		}
		res.Days = append(res.Days, DaySample{Day: day, Date: p.Date, Value: v})
		samples = append(samples, v)
		if day == sp.ToDay {
			break
		}
	}
	res.Stats = calcStats(samples)
	return res, nil
}
