package main

import (
	"handclass/server/engine"
	"math"
)

// CategoryTally counts how often each category comes up over many hands.
type CategoryTally struct {
	Hands  int
	Counts map[engine.Category]int
}

func newCategoryTally() *CategoryTally {
	return &CategoryTally{Counts: map[engine.Category]int{}}
}

func (t *CategoryTally) add(c engine.Category) {
	t.Hands++
	t.Counts[c]++
}

// Freq is the observed share of hands in category c.
func (t *CategoryTally) Freq(c engine.Category) float64 {
	if t.Hands == 0 {
		return 0
	}
	return float64(t.Counts[c]) / float64(t.Hands)
}

// simulate deals n hands of size from src and classifies each one.
func simulate(src engine.Source, cl engine.Classifier, n, size int) (*CategoryTally, error) {
	t := newCategoryTally()
	for i := 0; i < n; i++ {
		h, err := engine.Deal(src, size)
		if err != nil {
			return nil, err
		}
		t.add(cl.Classify(h).Category)
	}
	return t, nil
}

// WilsonCI95 for a Bernoulli rate with hits out of total.
func WilsonCI95(hits, total int) (low, hi float64) {
	if total <= 0 {
		return 0, 1
	}
	z := 1.96
	n := float64(total)
	p := float64(hits) / n
	den := 1 + (z*z)/n
	center := p + (z*z)/(2*n)
	half := z * math.Sqrt((p*(1-p))/n+(z*z)/(4*n*n))
	return (center - half) / den, (center + half) / den
}
