package handler

import (
	"net/http"

	"github.com/vinayw02/StepQuest/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "StepQuest API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/{id}", "description": "Récupérer un utilisateur par ID"},
				{"method": "PUT", "path": "/users/{id}", "description": "Mettre à jour un utilisateur (nom, fuseau, objectif)"},
				{"method": "POST", "path": "/users/{id}/avatar", "description": "Upload avatar utilisateur"},
				{"method": "GET", "path": "/users/{userId}/steps", "description": "Historique de pas (params: start, end)"},
				{"method": "GET", "path": "/users/{userId}/recap", "description": "Récap d'un jour : pas, baseline, points (params: date)"},
				{"method": "GET", "path": "/users/{userId}/friends", "description": "Liste d'amis"},
				{"method": "GET", "path": "/users/{userId}/friends/leaderboard", "description": "Classement des amis (params: period)"},
			},
			"steps": []map[string]string{
				{"method": "POST", "path": "/steps", "description": "Upsert des pas du jour (baseline et points recalculés serveur)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement global (params: period, limit)"},
				{"method": "GET", "path": "/leaderboard/users/{userId}", "description": "Rang d'un utilisateur (params: period)"},
			},
			"groups": []map[string]string{
				{"method": "GET", "path": "/groups", "description": "Récupérer tous les groupes"},
				{"method": "GET", "path": "/groups/{id}", "description": "Récupérer un groupe par ID"},
				{"method": "POST", "path": "/groups", "description": "Créer un groupe (resetPeriod: daily/weekly/biweekly/monthly)"},
				{"method": "POST", "path": "/groups/{id}/join", "description": "Rejoindre un groupe"},
				{"method": "DELETE", "path": "/groups/{id}/leave", "description": "Quitter un groupe"},
				{"method": "GET", "path": "/groups/{groupId}/leaderboard", "description": "Classement du groupe sur sa période de reset"},
			},
			"friends": []map[string]string{
				{"method": "POST", "path": "/friends/{friendId}", "description": "Ajouter un ami"},
				{"method": "DELETE", "path": "/friends/{friendId}", "description": "Retirer un ami"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour StepQuest - Classements de pas entre amis",
		},
	}

	utils.Success(w, routes)
}
