package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vinayw02/StepQuest/internal/database"
	"github.com/vinayw02/StepQuest/internal/middleware"
	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/points"
	"github.com/vinayw02/StepQuest/internal/store"
	"github.com/vinayw02/StepQuest/internal/utils"
)

type saveStepsRequest struct {
	Date  string `json:"date,omitempty"` // YYYY-MM-DD, défaut: aujourd'hui dans le fuseau stocké
	Steps int    `json:"steps"`
}

// SaveSteps upsert le compteur de pas du jour. Le client ne contrôle que la
// valeur `steps` : baseline et points sont toujours recalculés ici, jamais
// acceptés du writer. Une réécriture du même jour remplace la ligne
// (dernier écrit gagne par (user, date)).
func SaveSteps(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	var req saveStepsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	// Frontière de jour : le fuseau stocké de l'utilisateur fait foi
	day := utils.TodayIn(user.Timezone)
	if req.Date != "" {
		if day, err = utils.ParseDate(req.Date); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid date", err)
			return
		}
	}

	ctx := context.Background()
	steps := points.ClampSteps(req.Steps)
	stepStore := store.NewStepStore(database.DB)

	baseline, err := points.ComputeBaseline(ctx, stepStore, user.ID, day)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not compute baseline", err)
		return
	}

	earned, lost := points.ComputePoints(steps, baseline)

	// Delta sur le total cumulé : réécrire la même journée ne compte pas double
	previous, err := stepStore.Get(ctx, user.ID, day)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not read existing step day", err)
		return
	}
	delta := earned - lost
	if previous != nil {
		delta -= previous.PointsEarned - previous.PointsLost
	}

	stepDay := model.StepDay{
		UserID:          user.ID,
		Date:            day,
		Steps:           steps,
		PointsEarned:    earned,
		PointsLost:      lost,
		BaselineAverage: baseline,
	}

	if err := stepStore.Upsert(ctx, stepDay); err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not save step day", err)
		return
	}

	if err := utils.AdjustUserPoints(ctx, user.ID, delta); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not adjust user points", err)
		return
	}

	utils.Success(w, stepDay)
}

// GetStepHistory retourne les StepDay d'un utilisateur sur [start, end]
func GetStepHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	query := r.URL.Query()
	var err error

	end := utils.TodayIn(timezoneOf(r, userID))
	if s := query.Get("end"); s != "" {
		if end, err = utils.ParseDate(s); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid end date", err)
			return
		}
	}
	start := end.AddDate(0, 0, -29)
	if s := query.Get("start"); s != "" {
		if start, err = utils.ParseDate(s); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid start date", err)
			return
		}
	}
	if start.After(end) {
		utils.ErrorSimple(w, http.StatusBadRequest, "start must not be after end")
		return
	}

	days, err := store.NewStepStore(database.DB).GetRange(context.Background(), userID, start, end)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not query step history", err)
		return
	}
	if days == nil {
		days = []model.StepDay{}
	}

	utils.Success(w, days)
}

// GetRecap retourne le récap d'un jour : pas, baseline utilisée au moment du
// calcul (stockée pour l'audit), points gagnés/perdus
func GetRecap(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	day := utils.TodayIn(timezoneOf(r, userID))
	if s := r.URL.Query().Get("date"); s != "" {
		var err error
		if day, err = utils.ParseDate(s); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid date", err)
			return
		}
	}

	ctx := context.Background()
	stepStore := store.NewStepStore(database.DB)

	stepDay, err := stepStore.Get(ctx, userID, day)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not query recap", err)
		return
	}

	if stepDay == nil {
		// Aucun enregistrement ce jour : récap à zéro avec la baseline courante
		baseline, err := points.ComputeBaseline(ctx, stepStore, userID, day)
		if err != nil {
			utils.Error(w, http.StatusServiceUnavailable, "could not compute baseline", err)
			return
		}
		stepDay = &model.StepDay{
			UserID:          userID,
			Date:            day,
			BaselineAverage: baseline,
		}
	}

	utils.Success(w, stepDay)
}

// timezoneOf retourne le fuseau stocké de l'utilisateur visé, celui de
// l'appelant authentifié s'il s'agit de lui, UTC sinon
func timezoneOf(r *http.Request, userID string) string {
	if user, err := middleware.GetUserFromContext(r); err == nil && user.ID == userID {
		return user.Timezone
	}
	tz, err := store.NewUserStore(database.DB).Timezone(r.Context(), userID)
	if err != nil {
		return ""
	}
	return tz
}
