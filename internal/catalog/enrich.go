package catalog

import (
	"math/rand/v2"
)

const (
	DefaultProbability = 0.25
	DefaultMinTrending = 8
)

// Options controls the trending draw.
type Options struct {
	// Probability is the independent chance of each row being trending.
	Probability float64
	// MinTrending is the floor of trending rows, enforced best effort.
	MinTrending int
}

// DefaultOptions returns a 25% draw with a floor of 8.
func DefaultOptions() Options {
	return Options{
		Probability: DefaultProbability,
		MinTrending: DefaultMinTrending,
	}
}

// Result summarizes one enrichment.
type Result struct {
	// Skipped is true when the table already had the trending column.
	Skipped bool
	Total   int
	// Sampled is the trending count produced by the random draw alone.
	Sampled  int
	Trending int
	Promoted int
	// FloorAttempted is true when the draw fell short of the floor.
	FloorAttempted bool
	// FloorMet is false when the non-trending pool could not cover the deficit.
	FloorMet bool
}

// Percentage returns the share of trending rows in percent, 0 for an empty table.
func (r Result) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Trending) / float64(r.Total) * 100
}

// NewRand returns a PCG-backed source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Enrich appends the trending column to t unless it already exists.
//
// Each row is drawn independently with opts.Probability. When fewer than
// opts.MinTrending rows are drawn, the deficit is filled by promoting rows
// chosen uniformly without replacement from the non-trending pool. If the
// pool is smaller than the deficit nothing is promoted and FloorMet is false.
func Enrich(t *Table, rng *rand.Rand, opts Options) Result {
	if t.HasColumn(TrendingColumn) {
		return Result{Skipped: true, Total: t.Len(), FloorMet: true}
	}

	flags := make([]bool, t.Len())
	trending := 0
	for i := range flags {
		flags[i] = rng.Float64() < opts.Probability
		if flags[i] {
			trending++
		}
	}

	res := Result{
		Total:    len(flags),
		Sampled:  trending,
		FloorMet: trending >= opts.MinTrending,
	}

	if trending < opts.MinTrending {
		res.FloorAttempted = true
		deficit := opts.MinTrending - trending

		pool := make([]int, 0, len(flags)-trending)
		for i, f := range flags {
			if !f {
				pool = append(pool, i)
			}
		}

		if deficit > 0 && len(pool) >= deficit {
			for _, idx := range sample(rng, pool, deficit) {
				flags[idx] = true
			}
			trending += deficit
			res.Promoted = deficit
			res.FloorMet = true
		}
	}
	res.Trending = trending

	values := make([]any, len(flags))
	for i, f := range flags {
		values[i] = f
	}
	// Cannot fail: the column is absent and values match the row count.
	_ = t.AppendColumn(TrendingColumn, values)

	return res
}

// sample picks k distinct elements of pool with a partial Fisher-Yates shuffle.
// pool is reordered in place.
func sample(rng *rand.Rand, pool []int, k int) []int {
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
