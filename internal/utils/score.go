package utils

import (
	"context"
	"fmt"

	"github.com/vinayw02/StepQuest/internal/database"
)

// AdjustUserPoints applique un delta (positif ou négatif) au total cumulé de
// points d'un utilisateur. Sur un upsert de pas, le delta est la différence
// entre l'ancien et le nouveau solde du jour : jamais un simple incrément,
// sinon réécrire la même journée compterait double.
func AdjustUserPoints(ctx context.Context, userID string, delta int) error {
	if delta == 0 {
		return nil
	}

	_, err := database.DB.Exec(ctx,
		`UPDATE users SET points = points + $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		delta, userID,
	)
	if err != nil {
		return fmt.Errorf("impossible d'ajuster les points: %w", err)
	}

	return nil
}
