package points

// Barème d'accrual : par tranche de 500 pas au-dessus de la baseline on gagne
// 100 points (plafonné à 1000) ; par tranche de 500 pas en dessous on perd
// 50 points (plafonné à 500). La perte vaut exactement la moitié du gain à
// magnitude égale : ce ratio fait partie du contrat comportemental.
const (
	stepBracket    = 500
	earnPerBracket = 100
	losePerBracket = 50
	earnCap        = 1000
	loseCap        = 500

	// MaxDailySteps borne supérieure d'un compteur de pas plausible.
	// Au-delà, on considère une erreur de capteur/sync.
	MaxDailySteps = 100000
)

// ClampSteps ramène une valeur de pas brute dans [0, MaxDailySteps].
// Une valeur hors bornes n'est pas une erreur : elle est écrêtée en silence
// pour ne jamais bloquer la journée d'un utilisateur sur une donnée capteur
// mal formée.
func ClampSteps(steps int) int {
	if steps < 0 {
		return 0
	}
	if steps > MaxDailySteps {
		return MaxDailySteps
	}
	return steps
}

// ComputePoints calcule (gagnés, perdus) à partir des pas du jour et de la
// baseline. Zone morte de ±500 pas autour de la baseline : la fluctuation de
// bruit ne rapporte ni ne coûte rien. Fonction pure, l'appelant écrête les
// pas avant l'appel.
func ComputePoints(todaySteps, baseline int) (earned, lost int) {
	diff := todaySteps - baseline

	switch {
	case diff >= stepBracket:
		earned = (diff / stepBracket) * earnPerBracket
		if earned > earnCap {
			earned = earnCap
		}
	case diff <= -stepBracket:
		lost = (-diff / stepBracket) * losePerBracket
		if lost > loseCap {
			lost = loseCap
		}
	}

	return earned, lost
}
