package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/vinayw02/StepQuest/internal/models"
)

// storeErr enveloppe une erreur driver dans ErrStoreUnavailable pour que les
// appelants puissent distinguer "store injoignable" du reste avec errors.Is.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrStoreUnavailable, op, err)
}

// StepStore : accès pgx à la table step_days. Le pool est injecté, pas de
// singleton ici : les handlers passent database.DB.
type StepStore struct {
	pool *pgxpool.Pool
}

func NewStepStore(pool *pgxpool.Pool) *StepStore {
	return &StepStore{pool: pool}
}

// Get retourne le StepDay d'un utilisateur pour un jour, ou nil s'il n'existe pas.
func (s *StepStore) Get(ctx context.Context, userID string, day time.Time) (*model.StepDay, error) {
	var d model.StepDay
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, date, steps, points_earned, points_lost, baseline_average, created_at, updated_at
		FROM step_days
		WHERE user_id=$1 AND date=$2
	`, userID, day.Format("2006-01-02")).Scan(
		&d.UserID, &d.Date, &d.Steps, &d.PointsEarned, &d.PointsLost,
		&d.BaselineAverage, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get step day", err)
	}
	return &d, nil
}

// GetRange retourne les StepDay d'un utilisateur dans [start, end] inclus.
// Les jours sans enregistrement sont simplement absents de la liste.
func (s *StepStore) GetRange(ctx context.Context, userID string, start, end time.Time) ([]model.StepDay, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, date, steps, points_earned, points_lost, baseline_average, created_at, updated_at
		FROM step_days
		WHERE user_id=$1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`, userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, storeErr("query step range", err)
	}
	defer rows.Close()

	var days []model.StepDay
	for rows.Next() {
		var d model.StepDay
		if err := rows.Scan(
			&d.UserID, &d.Date, &d.Steps, &d.PointsEarned, &d.PointsLost,
			&d.BaselineAverage, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, storeErr("scan step day", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("read step range", err)
	}
	return days, nil
}

// SumRange somme les pas de chaque utilisateur sur [start, end] inclus.
// Un utilisateur sans aucune ligne dans la fenêtre est absent de la map.
func (s *StepStore) SumRange(ctx context.Context, userIDs []string, start, end time.Time) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, COALESCE(SUM(steps), 0) AS total
		FROM step_days
		WHERE user_id = ANY($1) AND date BETWEEN $2 AND $3
		GROUP BY user_id
	`, userIDs, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, storeErr("query step sums", err)
	}
	defer rows.Close()

	sums := make(map[string]int, len(userIDs))
	for rows.Next() {
		var id string
		var total int
		if err := rows.Scan(&id, &total); err != nil {
			return nil, storeErr("scan step sum", err)
		}
		sums[id] = total
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("read step sums", err)
	}
	return sums, nil
}

// Upsert écrit un StepDay complet (pas + champs dérivés recalculés serveur).
// Une écriture ultérieure pour la même clé remplace la ligne : dernier écrit
// gagne, par (user_id, date).
func (s *StepStore) Upsert(ctx context.Context, d model.StepDay) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO step_days(user_id, date, steps, points_earned, points_lost, baseline_average, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id, date)
		DO UPDATE SET
			steps = EXCLUDED.steps,
			points_earned = EXCLUDED.points_earned,
			points_lost = EXCLUDED.points_lost,
			baseline_average = EXCLUDED.baseline_average,
			updated_at = NOW()
	`, d.UserID, d.Date.Format("2006-01-02"), d.Steps, d.PointsEarned, d.PointsLost, d.BaselineAverage)
	if err != nil {
		return storeErr("upsert step day", err)
	}
	return nil
}
