package period

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		policy    Policy
		ref       string
		start     string
		end       string
		nextReset string
	}{
		{"daily", Daily, "2026-08-26", "2026-08-26", "2026-08-26", "2026-08-27"},

		// 2026-08-26 est un mercredi ; la semaine commence le dimanche
		{"weekly from wednesday", Weekly, "2026-08-26", "2026-08-23", "2026-08-29", "2026-08-31"},
		// Appliqué à un dimanche, start = le jour même
		{"weekly from sunday", Weekly, "2026-08-23", "2026-08-23", "2026-08-29", "2026-08-24"},
		// Depuis un lundi, le reset est le lundi SUIVANT, pas le jour même
		{"weekly from monday", Weekly, "2026-08-31", "2026-08-30", "2026-09-05", "2026-09-07"},

		// Début de la semaine ISO (lundi) contenant ref, moins une semaine pleine
		{"biweekly from wednesday", Biweekly, "2026-08-26", "2026-08-17", "2026-08-30", "2026-08-31"},
		// Un dimanche appartient à la semaine ISO ouverte le lundi précédent
		{"biweekly from sunday", Biweekly, "2026-08-23", "2026-08-10", "2026-08-23", "2026-08-24"},
		{"biweekly from monday", Biweekly, "2026-08-31", "2026-08-24", "2026-09-06", "2026-09-07"},

		{"monthly mid month", Monthly, "2026-08-26", "2026-08-01", "2026-08-31", "2026-09-01"},
		{"monthly december rollover", Monthly, "2026-12-15", "2026-12-01", "2026-12-31", "2027-01-01"},
		{"monthly leap february", Monthly, "2024-02-10", "2024-02-01", "2024-02-29", "2024-03-01"},
		{"monthly non-leap february", Monthly, "2026-02-10", "2026-02-01", "2026-02-28", "2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Resolve(tt.policy, date(tt.ref))
			if !w.Start.Equal(date(tt.start)) {
				t.Errorf("start = %s, want %s", w.Start.Format("2006-01-02"), tt.start)
			}
			if !w.End.Equal(date(tt.end)) {
				t.Errorf("end = %s, want %s", w.End.Format("2006-01-02"), tt.end)
			}
			if !w.NextReset.Equal(date(tt.nextReset)) {
				t.Errorf("nextReset = %s, want %s", w.NextReset.Format("2006-01-02"), tt.nextReset)
			}
		})
	}
}

// La fenêtre weekly fait toujours exactement 7 jours, aligné dimanche.
func TestResolveWeeklySpan(t *testing.T) {
	for d := 0; d < 14; d++ {
		ref := date("2026-08-16").AddDate(0, 0, d)
		w := Resolve(Weekly, ref)
		if w.Start.Weekday() != time.Sunday {
			t.Fatalf("ref %s: start %s is not a Sunday", ref.Format("2006-01-02"), w.Start.Format("2006-01-02"))
		}
		if !w.End.Equal(w.Start.AddDate(0, 0, 6)) {
			t.Fatalf("ref %s: window is not 7 days", ref.Format("2006-01-02"))
		}
		if w.Start.After(ref) {
			t.Fatalf("ref %s: start after ref", ref.Format("2006-01-02"))
		}
	}
}

func TestResolveIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, 8, 26, 6, 15, 0, 0, time.UTC)
	night := time.Date(2026, 8, 26, 23, 59, 59, 0, time.UTC)
	if Resolve(Weekly, morning) != Resolve(Weekly, night) {
		t.Fatal("same calendar day resolved to different windows")
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"daily", Daily, false},
		{"weekly", Weekly, false},
		{"biweekly", Biweekly, false},
		{"monthly", Monthly, false},
		{"", Daily, false},
		{"all-time", "", true},
		{"Weekly", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePolicy(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePolicy(%q) = (%v, %v), want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	w := Resolve(Weekly, date("2026-08-26"))
	if got := Key(Weekly, w); got != "weekly:2026-08-23" {
		t.Errorf("Key = %q, want %q", got, "weekly:2026-08-23")
	}
}
