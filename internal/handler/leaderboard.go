package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/vinayw02/StepQuest/internal/database"
	"github.com/vinayw02/StepQuest/internal/middleware"
	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/period"
	"github.com/vinayw02/StepQuest/internal/ranking"
	"github.com/vinayw02/StepQuest/internal/store"
	"github.com/vinayw02/StepQuest/internal/utils"
)

// rankingSource assemble la chaîne cache précalculé -> agrégation directe.
// Le cache n'est qu'une optimisation : injoignable ou absent, on recalcule
// depuis les enregistrements bruts avec une sémantique d'ordre identique.
func rankingSource() (ranking.Source, *store.UserStore) {
	direct := ranking.NewDirectSource(
		store.NewMembershipStore(database.DB),
		store.NewStepStore(database.DB),
	)
	cached := ranking.NewCachedSource(store.NewRankingCache(database.DB), direct)
	return ranking.NewFallbackSource(cached, direct), store.NewUserStore(database.DB)
}

func serveLeaderboard(w http.ResponseWriter, r *http.Request, scope model.Scope, policy period.Policy, limit int) {
	ctx := context.Background()
	callerID := middleware.CallerID(r)

	// Date de référence : aujourd'hui dans le fuseau stocké de l'appelant
	// (UTC pour une lecture anonyme)
	ref := utils.TodayIn(callerTimezone(r))

	source, users := rankingSource()
	entries, err := source.Fetch(ctx, scope, policy, ref, callerID, limit)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not compute leaderboard", err)
		return
	}

	if err := users.Hydrate(ctx, entries); err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not load user display info", err)
		return
	}

	utils.Success(w, entries)
}

// GetLeaderboard récupère le classement global
// Params: period (daily/weekly/biweekly/monthly), limit
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	policy, err := period.ParsePolicy(query.Get("period"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid period", err)
		return
	}

	limit := 50
	if s := query.Get("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l > 0 {
			limit = l
		}
	}

	serveLeaderboard(w, r, model.GlobalScope(), policy, limit)
}

// GetUserRank récupère le rang d'un utilisateur dans le classement global.
// Consultation séparée du top-N : c'est le chemin "mon rang" quand l'appelant
// tombe hors de la fenêtre tronquée.
func GetUserRank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	policy, err := period.ParsePolicy(r.URL.Query().Get("period"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid period", err)
		return
	}

	ctx := context.Background()
	wdw := period.Resolve(policy, utils.TodayIn(callerTimezone(r)))

	// Même ordre que le moteur : score décroissant puis user_id croissant,
	// rangs positionnels : les deux chemins doivent rester alignés
	var userRank model.UserRank
	err = database.DB.QueryRow(ctx, `
		WITH user_scores AS (
			SELECT u.id AS user_id, COALESCE(SUM(sd.steps), 0) AS score
			FROM users u
			LEFT JOIN step_days sd ON sd.user_id = u.id AND sd.date BETWEEN $1 AND $2
			WHERE u.deleted_at IS NULL
			GROUP BY u.id
		),
		ranked_users AS (
			SELECT
				us.user_id,
				us.score,
				ROW_NUMBER() OVER (ORDER BY us.score DESC, us.user_id ASC) AS rank
			FROM user_scores us
		),
		total_count AS (
			SELECT COUNT(*) AS total FROM ranked_users
		)
		SELECT ru.rank, ru.score, (SELECT total FROM total_count)
		FROM ranked_users ru
		WHERE ru.user_id = $3
	`, wdw.Start.Format("2006-01-02"), wdw.End.Format("2006-01-02"), userID).Scan(
		&userRank.Rank, &userRank.Score, &userRank.TotalUsers,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found in leaderboard")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not fetch user rank", err)
		return
	}

	userRank.UserID = userID

	if userRank.TotalUsers > 0 {
		userRank.Percentile = float64(userRank.Rank) / float64(userRank.TotalUsers) * 100
	} else {
		userRank.Percentile = 100
	}

	utils.Success(w, userRank)
}

// GetFriendsLeaderboard récupère le classement des amis d'un utilisateur
// (l'utilisateur lui-même inclus). Pas de limite sur ce scope.
func GetFriendsLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	policy, err := period.ParsePolicy(r.URL.Query().Get("period"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid period", err)
		return
	}

	serveLeaderboard(w, r, model.FriendsOf(userID), policy, 0)
}

func callerTimezone(r *http.Request) string {
	if user, err := middleware.GetUserFromContext(r); err == nil {
		return user.Timezone
	}
	return ""
}
