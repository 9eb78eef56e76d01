package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vinayw02/StepQuest/internal/config"
	"github.com/vinayw02/StepQuest/internal/database"
	"github.com/vinayw02/StepQuest/internal/middleware"
	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/services"
	"github.com/vinayw02/StepQuest/internal/utils"
)

// GetUser récupère un utilisateur par ID
func GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var user model.UserProfile
	err := database.DB.QueryRow(context.Background(), `
		SELECT id, name, email, COALESCE(avatar,''), COALESCE(timezone,''),
			COALESCE(daily_goal,0), points, is_admin, join_date, created_at, updated_at
		FROM users
		WHERE id=$1 AND deleted_at IS NULL
	`, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Avatar, &user.Timezone,
		&user.DailyGoal, &user.Points, &user.IsAdmin,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(w, user)
}

// UpdateUser met à jour le profil (nom, fuseau horaire, objectif de pas).
// Seul l'utilisateur lui-même peut modifier son profil.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	userID := mux.Vars(r)["id"]
	if caller.ID != userID && !caller.IsAdmin {
		utils.ErrorSimple(w, http.StatusForbidden, "cannot update another user's profile")
		return
	}

	var payload struct {
		Name      *string `json:"name,omitempty"`
		Timezone  *string `json:"timezone,omitempty"`
		DailyGoal *int    `json:"dailyGoal,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if payload.Timezone != nil && *payload.Timezone != "" {
		if _, err := time.LoadLocation(*payload.Timezone); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid timezone", err)
			return
		}
	}

	ctx := context.Background()
	_, err = database.DB.Exec(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			timezone = COALESCE($3, timezone),
			daily_goal = COALESCE($4, daily_goal),
			updated_by = $5,
			updated_at = NOW()
		WHERE id=$1 AND deleted_at IS NULL
	`, userID, payload.Name, payload.Timezone, payload.DailyGoal, caller.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user", err)
		return
	}

	GetUser(w, r)
}

// UploadAvatar upload la photo de profil vers Cloudinary et stocke l'URL
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	userID := mux.Vars(r)["id"]
	if caller.ID != userID {
		utils.ErrorSimple(w, http.StatusForbidden, "cannot upload another user's avatar")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing avatar file", err)
		return
	}
	defer file.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	cloudinarySvc, err := services.NewCloudinaryService(cfg)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "cloudinary unavailable", err)
		return
	}

	ctx := context.Background()
	url, err := cloudinarySvc.UploadAvatar(ctx, file, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE users SET avatar=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`,
		userID, url,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar url", err)
		return
	}

	utils.Success(w, map[string]string{"avatar": url})
}
