package model

import (
	"time"
)

// AuditFields contient les champs d'audit standard pour toutes les entités
type AuditFields struct {
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	DeletedAt time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string   `json:"deletedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type UserProfile struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`  // Nom IANA, ex: "Europe/Paris"
	DailyGoal int       `json:"dailyGoal,omitempty"` // Objectif de pas quotidien (affichage uniquement)
	Provider  string    `json:"provider,omitempty"`  // email, google, apple
	Points    int       `json:"points"`              // Total cumulé de points
	IsAdmin   bool      `json:"isAdmin"`
	JoinDate  time.Time `json:"joinDate,omitempty"`
	AuditFields
}
