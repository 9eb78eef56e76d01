package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vinayw02/StepQuest/internal/period"
)

func DecodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func GetToken(r *http.Request) (string, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", fmt.Errorf("missing token")
	}
	return token, nil
}

// ParseDate parse un paramètre de date "2006-01-02" en jour calendaire.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return period.Day(t), nil
}

// TodayIn retourne le jour calendaire courant dans le fuseau stocké de
// l'utilisateur. C'est le fuseau stocké qui fait foi pour la frontière de
// jour, pas celui de l'appareil : fuseau vide ou invalide = UTC.
func TodayIn(tz string) time.Time {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
