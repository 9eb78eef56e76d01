package model

import (
	"time"
)

// StepDay représente le compteur de pas d'un utilisateur pour un jour calendaire.
// Une seule ligne par (user_id, date) : upsert : seule la valeur `steps` vient
// du client, les champs dérivés sont toujours recalculés côté serveur.
type StepDay struct {
	UserID          string    `json:"userId"`
	Date            time.Time `json:"date"` // Jour calendaire, minuit UTC
	Steps           int       `json:"steps"`
	PointsEarned    int       `json:"pointsEarned"`
	PointsLost      int       `json:"pointsLost"`
	BaselineAverage int       `json:"baselineAverage"` // Baseline utilisée au moment du calcul (récap)
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}
