package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vinayw02/StepQuest/internal/database"
	"github.com/vinayw02/StepQuest/internal/middleware"
	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/period"
	"github.com/vinayw02/StepQuest/internal/scanner"
	"github.com/vinayw02/StepQuest/internal/utils"
)

const groupSelect = `
	SELECT
		g.id, g.name, g.description, g.reset_period,
		COALESCE(array_agg(gm.user_id) FILTER (WHERE gm.user_id IS NOT NULL), ARRAY[]::text[]) AS member_ids,
		g.created_by, g.created_at, g.updated_at
	FROM groups g
	LEFT JOIN group_members gm ON gm.group_id = g.id AND gm.deleted_at IS NULL
	WHERE g.deleted_at IS NULL
`

// GetGroups récupère tous les groupes avec leurs membres
func GetGroups(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(context.Background(),
		groupSelect+` GROUP BY g.id ORDER BY g.created_at DESC`)
	if err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "could not query groups", err)
		return
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		g, err := scanner.ScanGroup(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan group row", err)
			return
		}
		groups = append(groups, *g)
	}

	utils.Success(w, groups)
}

// GetGroupById récupère un groupe par son ID
func GetGroupById(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]

	row := database.DB.QueryRow(context.Background(),
		groupSelect+` AND g.id=$1 GROUP BY g.id`, groupID)

	g, err := scanner.ScanGroup(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "group not found", err)
		return
	}

	utils.Success(w, g)
}

// CreateGroup crée un groupe avec sa politique de reset ; le créateur en
// devient le premier membre
func CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ResetPeriod string `json:"resetPeriod"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if payload.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "group name is required")
		return
	}

	policy, err := period.ParsePolicy(payload.ResetPeriod)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid reset period", err)
		return
	}

	ctx := context.Background()
	groupID := uuid.NewString()

	_, err = database.DB.Exec(ctx, `
		INSERT INTO groups(id, name, description, reset_period, created_by, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, NOW(), NOW())
	`, groupID, payload.Name, payload.Description, string(policy), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create group", err)
		return
	}

	_, err = database.DB.Exec(ctx, `
		INSERT INTO group_members(group_id, user_id, created_at)
		VALUES($1, $2, NOW())
	`, groupID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not add creator to group", err)
		return
	}

	row := database.DB.QueryRow(ctx, groupSelect+` AND g.id=$1 GROUP BY g.id`, groupID)
	g, err := scanner.ScanGroup(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not reload group", err)
		return
	}

	utils.Success(w, g)
}

// JoinGroup ajoute l'utilisateur authentifié au groupe
func JoinGroup(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}
	groupID := mux.Vars(r)["id"]

	// Rejoindre deux fois est sans effet (réactive un leave éventuel)
	_, err = database.DB.Exec(context.Background(), `
		INSERT INTO group_members(group_id, user_id, created_at)
		VALUES($1, $2, NOW())
		ON CONFLICT (group_id, user_id)
		DO UPDATE SET deleted_at = NULL, updated_at = NOW()
	`, groupID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not join group", err)
		return
	}

	utils.Message(w, "joined")
}

// LeaveGroup retire l'utilisateur authentifié du groupe (soft delete)
func LeaveGroup(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}
	groupID := mux.Vars(r)["id"]

	res, err := database.DB.Exec(context.Background(), `
		UPDATE group_members SET deleted_at = NOW()
		WHERE group_id=$1 AND user_id=$2 AND deleted_at IS NULL
	`, groupID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not leave group", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "not a member of this group")
		return
	}

	utils.Message(w, "left")
}

// GetGroupLeaderboard récupère le classement d'un groupe sur la fenêtre de
// sa propre politique de reset. Un groupe vide donne une liste vide, pas une
// erreur.
func GetGroupLeaderboard(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	var resetPeriod string
	err := database.DB.QueryRow(context.Background(),
		`SELECT reset_period FROM groups WHERE id=$1 AND deleted_at IS NULL`,
		groupID,
	).Scan(&resetPeriod)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "group not found", err)
		return
	}

	policy, err := period.ParsePolicy(resetPeriod)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "group has an invalid reset period", err)
		return
	}

	serveLeaderboard(w, r, model.GroupScope(groupID), policy, 0)
}
