package points

import (
	"context"
	"errors"
	"testing"
	"time"

	model "github.com/vinayw02/StepQuest/internal/models"
)

type fakeStepReader struct {
	days map[string]int // "2006-01-02" -> steps
	err  error
}

func (f *fakeStepReader) GetRange(_ context.Context, _ string, start, end time.Time) ([]model.StepDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.StepDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if steps, ok := f.days[d.Format("2006-01-02")]; ok {
			out = append(out, model.StepDay{Date: d, Steps: steps})
		}
	}
	return out, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeBaseline(t *testing.T) {
	asOf := date("2026-08-31")

	tests := []struct {
		name string
		days map[string]int
		want int
	}{
		{
			name: "no history",
			days: map[string]int{},
			want: 0,
		},
		{
			// 2 jours enregistrés sur 7 : les jours manquants comptent zéro,
			// on divise quand même par 7
			name: "zero fill missing days",
			days: map[string]int{"2026-08-25": 7000, "2026-08-28": 3500},
			want: 1500,
		},
		{
			name: "full week",
			days: map[string]int{
				"2026-08-24": 7000, "2026-08-25": 7000, "2026-08-26": 7000,
				"2026-08-27": 7000, "2026-08-28": 7000, "2026-08-29": 7000,
				"2026-08-30": 7000,
			},
			want: 7000,
		},
		{
			// asOf est exclusif : le jour courant n'entre jamais dans la fenêtre
			name: "as-of day excluded",
			days: map[string]int{"2026-08-31": 70000},
			want: 0,
		},
		{
			// le 8e jour en arrière est hors fenêtre
			name: "window is exactly seven days",
			days: map[string]int{"2026-08-23": 70000, "2026-08-24": 7000},
			want: 1000,
		},
		{
			name: "floor division",
			days: map[string]int{"2026-08-30": 100},
			want: 14, // 100/7
		},
		{
			// valeurs hors bornes écrêtées avant la somme
			name: "clamps sensor garbage",
			days: map[string]int{"2026-08-29": 999999, "2026-08-30": -50},
			want: 14285, // 100000/7
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStepReader{days: tt.days}
			got, err := ComputeBaseline(context.Background(), store, "u1", asOf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("baseline = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeBaselinePropagatesStoreError(t *testing.T) {
	store := &fakeStepReader{err: model.ErrStoreUnavailable}
	_, err := ComputeBaseline(context.Background(), store, "u1", date("2026-08-31"))
	if !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
