package scanner

import (
	"database/sql"

	"github.com/lib/pq"

	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/utils"
)

// ScanUserProfile scanne une ligne SQL vers un UserProfile
// Utilise les types sql.Null* et les convertit automatiquement
func ScanUserProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, timezone, provider sql.NullString
	var dailyGoal sql.NullInt64
	var updatedBy sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &timezone,
		&dailyGoal, &provider, &user.Points, &user.IsAdmin,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
		&user.CreatedBy, &updatedBy,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	user.Avatar = utils.NullStringToString(avatar)
	user.Timezone = utils.NullStringToString(timezone)
	user.Provider = utils.NullStringToString(provider)
	user.DailyGoal = utils.NullInt64ToInt(dailyGoal)
	user.UpdatedBy = utils.NullStringToPointer(updatedBy)

	return &user, nil
}

// ScanStepDay scanne une ligne SQL vers un StepDay
func ScanStepDay(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.StepDay, error) {
	var d model.StepDay

	err := scanner.Scan(
		&d.UserID, &d.Date, &d.Steps, &d.PointsEarned, &d.PointsLost,
		&d.BaselineAverage, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// ScanGroup scanne une ligne SQL vers un Group, avec pq.Array pour le
// tableau d'ids des membres (array_agg côté SQL)
func ScanGroup(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Group, error) {
	var g model.Group
	var description sql.NullString

	err := scanner.Scan(
		&g.ID, &g.Name, &description, &g.ResetPeriod,
		pq.Array(&g.MemberIDs), &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.Description = utils.NullStringToString(description)
	g.MemberCount = len(g.MemberIDs)

	return &g, nil
}
