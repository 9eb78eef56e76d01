package period

import (
	"fmt"
	"time"
)

// Policy est la cadence de reset d'un classement. Tag nu : les noms
// d'affichage et icônes appartiennent à la couche UI, pas au serveur.
type Policy string

const (
	Daily    Policy = "daily"
	Weekly   Policy = "weekly"
	Biweekly Policy = "biweekly"
	Monthly  Policy = "monthly"
)

// ParsePolicy valide un paramètre de requête. Chaîne vide = daily.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Daily, Weekly, Biweekly, Monthly:
		return Policy(s), nil
	case "":
		return Daily, nil
	}
	return "", fmt.Errorf("unknown reset period %q", s)
}

// Window est la fenêtre [Start, End] inclusive de la période courante,
// plus l'instant du prochain reset.
type Window struct {
	Start     time.Time
	End       time.Time
	NextReset time.Time
}

// Day normalise un instant en jour calendaire (minuit UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve calcule la fenêtre de période pour une politique et une date de
// référence. Fonction pure : chaque appel repart de zéro, aucun état de
// période n'est conservé (pas de dérive possible de bornes cachées).
//
// La semaine commence le dimanche (pas ISO lundi) : ce choix doit rester
// aligné avec la frontière de jour affichée partout ailleurs dans l'app.
func Resolve(policy Policy, ref time.Time) Window {
	day := Day(ref)

	switch policy {
	case Weekly:
		// Dimanche le plus récent <= ref
		start := day.AddDate(0, 0, -int(day.Weekday()))
		// Le reset tombe le lundi strictement après ref
		return Window{
			Start:     start,
			End:       start.AddDate(0, 0, 6),
			NextReset: nextMonday(day),
		}

	case Biweekly:
		// Début de la semaine ISO (lundi) contenant ref, reculé d'une
		// semaine pleine supplémentaire
		isoStart := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
		start := isoStart.AddDate(0, 0, -7)
		return Window{
			Start:     start,
			End:       start.AddDate(0, 0, 13),
			NextReset: start.AddDate(0, 0, 14),
		}

	case Monthly:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{
			Start:     first,
			End:       first.AddDate(0, 1, -1), // dernier jour du mois, 28-31 inclus
			NextReset: first.AddDate(0, 1, 0),
		}

	default: // Daily
		return Window{
			Start:     day,
			End:       day,
			NextReset: day.AddDate(0, 0, 1),
		}
	}
}

func nextMonday(day time.Time) time.Time {
	delta := (8 - int(day.Weekday())) % 7
	if delta == 0 {
		delta = 7
	}
	return day.AddDate(0, 0, delta)
}

// Key identifie une période résolue pour le cache de classement,
// ex: "weekly:2026-08-30".
func Key(policy Policy, w Window) string {
	return fmt.Sprintf("%s:%s", policy, w.Start.Format("2006-01-02"))
}
