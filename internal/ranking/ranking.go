package ranking

import (
	"cmp"
	"slices"

	model "github.com/vinayw02/StepQuest/internal/models"
)

// Rank classe un ensemble de membres par score décroissant.
//
// Tout membre absent de metricByUser reçoit un score de 0 et apparaît quand
// même : disparaître d'un classement est déroutant pour l'utilisateur final.
// Le départage des égalités se fait par user_id croissant : n'importe quelle
// clé secondaire déterministe convient, l'important est que deux appels avec
// les mêmes entrées produisent une sortie identique octet pour octet.
//
// Les rangs sont positionnels : 1..n contigus, jamais partagés, même à score
// égal (pas de classement "1224" façon sportive).
//
// limit > 0 tronque la sortie après tri (utilisé pour le scope global). Si
// l'appelant tombe hors de la fenêtre tronquée, son rang se récupère par une
// consultation séparée : le moteur n'inclut pas d'office un appelant
// hors fenêtre.
func Rank(memberIDs []string, metricByUser map[string]int, callerID string, limit int) []model.LeaderboardEntry {
	// Scope vide => liste vide, pas une erreur
	entries := make([]model.LeaderboardEntry, 0, len(memberIDs))

	seen := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		entries = append(entries, model.LeaderboardEntry{
			UserID: id,
			Score:  metricByUser[id],
		})
	}

	slices.SortFunc(entries, func(a, b model.LeaderboardEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].IsCaller = entries[i].UserID == callerID
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}

// Annotate repositionne le flag is_caller sur un classement déjà calculé
// (ex: entrées relues depuis le cache, où l'appelant n'était pas connu).
func Annotate(entries []model.LeaderboardEntry, callerID string) {
	for i := range entries {
		entries[i].IsCaller = entries[i].UserID == callerID
	}
}
