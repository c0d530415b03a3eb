// Package report renders simulation results for people and for plotting
// tools. Nothing here feeds back into the engine.
package report

import (
	"fmt"
	"io"
	"math"

	"opsim/internal/combat"
)

// WriteText prints the three headline figures of a run.
func WriteText(w io.Writer, s combat.Summary) error {
	_, err := fmt.Fprintf(w,
		"Trials: %d (seed %d, logistics success rate %.2f)\n"+
			"Mean final strength, side A: %.2f (sd %.2f)\n"+
			"Mean final strength, side B: %.2f (sd %.2f)\n"+
			"Probability side A ends stronger: %.2f%%\n",
		s.Trials, s.Seed, s.LogisticsRate,
		s.MeanA, s.StdDevA,
		s.MeanB, s.StdDevB,
		s.WinProbability*100)
	return err
}

func WriteHourly(w io.Writer, r combat.HourlyResult) error {
	cumA, cumB := r.Cumulative()
	if _, err := fmt.Fprintf(w, "Hours fought: %d, remaining A=%d B=%d\n", r.Hours(), r.FinalA, r.FinalB); err != nil {
		return err
	}
	for h := range cumA {
		if _, err := fmt.Fprintf(w, "%3d  lost A %5d (total %6d)  lost B %5d (total %6d)\n",
			h+1, r.LossesA[h], cumA[h], r.LossesB[h], cumB[h]); err != nil {
			return err
		}
	}
	return nil
}

// Histogram buckets values into equal-width bins between their minimum
// and maximum. Edges has len(Counts)+1 entries.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

func NewHistogram(values []float64, bins int) Histogram {
	if len(values) == 0 || bins < 1 {
		return Histogram{}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	width := (hi - lo) / float64(bins)
	h := Histogram{Edges: make([]float64, bins+1), Counts: make([]int, bins)}
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		h.Counts[i]++
	}
	return h
}

// Document is the JSON written for a campaign run.
type Document struct {
	Summary   combat.Summary `json:"summary"`
	Advantage *Histogram     `json:"advantage_histogram,omitempty"`
	Trace     *combat.Trace  `json:"trace,omitempty"`
}
