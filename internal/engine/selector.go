package engine

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/abhisek/guessr/internal/questionbank"
)

// Weights tune how strongly the selector favours the front of the ranking.
type Weights struct {
	// RankBias is the extra copies given to the top candidate, falling
	// linearly to zero at the bottom.
	RankBias float64
	// ScoreBias is the extra copies per point of positive score.
	ScoreBias float64
}

// DefaultWeights are used when a Selector is built with zero Weights.
var DefaultWeights = Weights{RankBias: 4, ScoreBias: 0.5}

// rarityDivisor sets the frequency floor: texts seen fewer than pool/9
// times are dropped.
const rarityDivisor = 9

// Selector picks the next question to ask.
type Selector struct {
	bank    *questionbank.Bank
	weights Weights
	rng     *rand.Rand
}

// NewSelector creates a selector over bank using rng for tie ordering.
func NewSelector(bank *questionbank.Bank, rng *rand.Rand, w Weights) *Selector {
	if w == (Weights{}) {
		w = DefaultWeights
	}
	return &Selector{bank: bank, weights: w, rng: rng}
}

// copies returns how many times the candidate at position i of n with the
// given score contributes its questions to the pool.
func (s *Selector) copies(i, n int, score float64) int {
	rank := 0.0
	if n > 1 {
		rank = s.weights.RankBias * float64(n-1-i) / float64(n-1)
	}
	return int(math.Round(rank + s.weights.ScoreBias*math.Max(score, 0) + 1))
}

// Frequencies returns the weighted count of every unasked question text
// across the ranking, and the total pool size.
func (s *Selector) Frequencies(ranking Ranking, asked AskedSet) (map[string]int, int) {
	freq := make(map[string]int)
	pool := 0
	for i, e := range ranking {
		c := s.copies(i, len(ranking), e.Score)
		for _, text := range s.bank.QuestionTexts(e.Candidate) {
			if asked.Has(text) {
				continue
			}
			freq[text] += c
			pool += c
		}
	}
	return freq, pool
}

// Select returns the most discriminating unasked questions in random order.
// The first element is the one to present. An empty result means no
// question is left to ask.
func (s *Selector) Select(ranking Ranking, asked AskedSet) []string {
	freq, pool := s.Frequencies(ranking, asked)
	if len(freq) == 0 {
		return nil
	}

	texts := make([]string, 0, len(freq))
	for t := range freq {
		texts = append(texts, t)
	}
	sort.Strings(texts)

	floor := int(math.Round(float64(pool) / rarityDivisor))
	var survivors []string
	for _, t := range texts {
		if freq[t] >= floor {
			survivors = append(survivors, t)
		}
	}
	if len(survivors) == 0 {
		survivors = texts
	}

	lo, hi := freq[survivors[0]], freq[survivors[0]]
	for _, t := range survivors[1:] {
		lo = min(lo, freq[t])
		hi = max(hi, freq[t])
	}
	mid := float64(lo+hi) / 2

	best := math.Inf(1)
	var picked []string
	for _, t := range survivors {
		d := math.Abs(float64(freq[t]) - mid)
		switch {
		case d < best:
			best = d
			picked = append(picked[:0], t)
		case d == best:
			picked = append(picked, t)
		}
	}

	if s.rng != nil {
		s.rng.Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
	}
	return picked
}
