package report

import (
	"bytes"
	"strings"
	"testing"

	"opsim/internal/combat"
)

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	s := combat.Summary{Trials: 1000, Seed: 42, LogisticsRate: 0.8, MeanA: 3681.456, MeanB: 3496.2, WinProbability: 0.975}
	if err := WriteText(&buf, s); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Trials: 1000 (seed 42", "side A: 3681.46", "side B: 3496.20", "stronger: 97.50%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteHourly(t *testing.T) {
	var buf bytes.Buffer
	r := combat.HourlyResult{LossesA: []int{5, 7}, LossesB: []int{9, 3}, FinalA: 88, FinalB: 188}
	if err := WriteHourly(&buf, r); err != nil {
		t.Fatalf("write hourly: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Hours fought: 2") || !strings.Contains(out, "(total     12)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestNewHistogram(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		bins   int
		want   []int
	}{
		{name: "spread", values: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, bins: 5, want: []int{2, 2, 2, 2, 2}},
		{name: "constant", values: []float64{3, 3, 3}, bins: 2, want: []int{3, 0}},
		{name: "empty", values: nil, bins: 4, want: nil},
		{name: "no bins", values: []float64{1}, bins: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistogram(tt.values, tt.bins)
			if len(h.Counts) != len(tt.want) {
				t.Fatalf("expected %d bins, got %d", len(tt.want), len(h.Counts))
			}
			for i := range tt.want {
				if h.Counts[i] != tt.want[i] {
					t.Fatalf("bin %d: expected %d, got %d", i, tt.want[i], h.Counts[i])
				}
			}
			if tt.want != nil && len(h.Edges) != len(h.Counts)+1 {
				t.Fatalf("expected %d edges, got %d", len(h.Counts)+1, len(h.Edges))
			}
		})
	}
}
