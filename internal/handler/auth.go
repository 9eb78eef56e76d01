package handler

import (
	"context"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/vinayw02/StepQuest/internal/database"
	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/utils"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	ctx := context.Background()
	var user model.UserProfile
	var hashedPassword string

	err := database.DB.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(avatar,''), COALESCE(timezone,''), COALESCE(daily_goal,0),
		 points, is_admin, join_date, created_at, updated_at, password_hash
		 FROM users WHERE email=$1 AND deleted_at IS NULL`,
		req.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.Timezone, &user.DailyGoal,
		&user.Points, &user.IsAdmin, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt, &hashedPassword)

	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.CreateSession(ctx, user.ID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := utils.GetToken(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing token", err)
		return
	}

	if err := utils.InvalidateSession(context.Background(), token); err != nil {
		utils.Error(w, http.StatusNotFound, "session not found or already logged out", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Timezone string `json:"timezone"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if payload.Email == "" || payload.Password == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	var user model.UserProfile
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, avatar, timezone, daily_goal, provider, points, is_admin, join_date, created_at, updated_at)
		 VALUES($1, $2, $3, '', $4, 0, 'email', 0, false, NOW(), NOW(), NOW())
		 RETURNING id, name, email, timezone, points, is_admin, join_date, created_at, updated_at`,
		payload.Name, payload.Email, string(hashed), payload.Timezone,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Timezone, &user.Points,
		&user.IsAdmin, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}

	// L'utilisateur se crée lui-même
	_, err = database.DB.Exec(ctx, `UPDATE users SET created_by=$1 WHERE id=$1`, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update created_by", err)
		return
	}

	// Token pour l'auto-login après inscription
	token, err := utils.CreateSession(ctx, user.ID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
