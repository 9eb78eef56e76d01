package model

// Group est un scope de classement avec sa propre politique de reset.
// ResetPeriod vaut daily, weekly, biweekly ou monthly (voir internal/period).
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ResetPeriod string   `json:"resetPeriod"`
	MemberIDs   []string `json:"memberIds,omitempty"`
	MemberCount int      `json:"memberCount"`
	AuditFields
}

type Friendship struct {
	UserID   string `json:"userId"`
	FriendID string `json:"friendId"`
	AuditFields
}
