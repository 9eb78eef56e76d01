package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vinayw02/StepQuest/internal/database"
	"github.com/vinayw02/StepQuest/internal/middleware"
	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/utils"
)

// AddFriend matérialise une amitié (symétrique : une ligne par direction).
// Le workflow de demande/acceptation vit côté app ; ici on n'enregistre que
// le roster que le scope "friends" consomme.
func AddFriend(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	friendID := mux.Vars(r)["friendId"]
	if friendID == user.ID {
		utils.ErrorSimple(w, http.StatusBadRequest, "cannot befriend yourself")
		return
	}

	ctx := context.Background()

	var exists bool
	err = database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id=$1 AND deleted_at IS NULL)`,
		friendID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not check friend", err)
		return
	}
	if !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	_, err = database.DB.Exec(ctx, `
		INSERT INTO friendships(user_id, friend_id, created_at)
		VALUES($1, $2, NOW()), ($2, $1, NOW())
		ON CONFLICT (user_id, friend_id)
		DO UPDATE SET deleted_at = NULL, updated_at = NOW()
	`, user.ID, friendID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not add friend", err)
		return
	}

	utils.Message(w, "friend added")
}

// RemoveFriend supprime l'amitié dans les deux directions (soft delete)
func RemoveFriend(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	friendID := mux.Vars(r)["friendId"]

	res, err := database.DB.Exec(context.Background(), `
		UPDATE friendships SET deleted_at = NOW()
		WHERE ((user_id=$1 AND friend_id=$2) OR (user_id=$2 AND friend_id=$1))
			AND deleted_at IS NULL
	`, user.ID, friendID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not remove friend", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "friendship not found")
		return
	}

	utils.Message(w, "friend removed")
}

// GetFriends récupère la liste d'amis d'un utilisateur
func GetFriends(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	rows, err := database.DB.Query(context.Background(), `
		SELECT u.id, u.name, COALESCE(u.avatar,''), u.points
		FROM friendships f
		INNER JOIN users u ON u.id = f.friend_id
		WHERE f.user_id=$1 AND f.deleted_at IS NULL AND u.deleted_at IS NULL
		ORDER BY u.name
	`, userID)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not query friends", err)
		return
	}
	defer rows.Close()

	friends := []model.UserProfile{}
	for rows.Next() {
		var f model.UserProfile
		if err := rows.Scan(&f.ID, &f.Name, &f.Avatar, &f.Points); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan friend row", err)
			return
		}
		friends = append(friends, f)
	}

	utils.Success(w, friends)
}
