package points

import (
	"context"
	"time"

	model "github.com/vinayw02/StepQuest/internal/models"
)

// BaselineWindowDays : la baseline est la moyenne glissante des 7 jours
// calendaires strictement avant le jour courant.
const BaselineWindowDays = 7

// StepReader est la vue lecture du store de pas dont la baseline a besoin.
// Injecté par l'appelant : jamais de singleton dans ce package.
type StepReader interface {
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]model.StepDay, error)
}

// ComputeBaseline calcule la baseline d'un utilisateur à la date asOf
// (exclusive : asOf lui-même n'entre jamais dans la fenêtre).
//
// Division entière par 7 quel que soit le nombre de jours enregistrés : un
// jour manquant compte zéro. Le dénominateur fixe récompense la régularité
// et rend le calcul identique à chaque appel.
func ComputeBaseline(ctx context.Context, store StepReader, userID string, asOf time.Time) (int, error) {
	start := asOf.AddDate(0, 0, -BaselineWindowDays)
	end := asOf.AddDate(0, 0, -1)

	days, err := store.GetRange(ctx, userID, start, end)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, d := range days {
		total += ClampSteps(d.Steps)
	}

	return total / BaselineWindowDays, nil
}
