package model

// LeaderboardEntry est une ligne de classement, toujours dérivée, jamais la
// source de vérité. Les rangs sont des entiers contigus à partir de 1, même en
// cas d'égalité de score (départage déterministe par user_id croissant).
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Avatar   string `json:"avatar,omitempty"`
	Rank     int    `json:"rank"`
	Score    int    `json:"score"` // Somme des pas sur la période résolue
	IsCaller bool   `json:"isCaller"`
}

type UserRank struct {
	UserID     string  `json:"userId"`
	Rank       int     `json:"rank"`
	Score      int     `json:"score"`
	TotalUsers int     `json:"totalUsers"`
	Percentile float64 `json:"percentile"` // Top X%
}

// ScopeKind identifie la population sur laquelle un classement est calculé.
type ScopeKind string

const (
	ScopeGlobal  ScopeKind = "global"
	ScopeFriends ScopeKind = "friends"
	ScopeGroup   ScopeKind = "group"
)

// Scope est résolu en un ensemble d'ids de membres par le MembershipStore ;
// le moteur de classement ne voit jamais que l'ensemble matérialisé.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   string    `json:"id,omitempty"` // user_id (friends) ou group_id (group), vide pour global
}

func GlobalScope() Scope              { return Scope{Kind: ScopeGlobal} }
func FriendsOf(userID string) Scope   { return Scope{Kind: ScopeFriends, ID: userID} }
func GroupScope(groupID string) Scope { return Scope{Kind: ScopeGroup, ID: groupID} }
