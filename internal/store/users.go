package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/vinayw02/StepQuest/internal/models"
)

// UserStore : hydratation des infos d'affichage sur des entrées de classement.
// Le moteur de classement ne manipule que des ids ; nom et avatar sont joints
// ici, après coup.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Hydrate remplit UserName et Avatar des entrées dont ils manquent.
// Les entrées relues du cache arrivent déjà hydratées (jointure côté SQL).
func (s *UserStore) Hydrate(ctx context.Context, entries []model.LeaderboardEntry) error {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.UserName == "" {
			ids = append(ids, e.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(avatar,'') FROM users WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return storeErr("query user display info", err)
	}
	defer rows.Close()

	type info struct{ name, avatar string }
	byID := make(map[string]info, len(ids))
	for rows.Next() {
		var id string
		var in info
		if err := rows.Scan(&id, &in.name, &in.avatar); err != nil {
			return storeErr("scan user display info", err)
		}
		byID[id] = in
	}
	if err := rows.Err(); err != nil {
		return storeErr("read user display info", err)
	}

	for i := range entries {
		if in, ok := byID[entries[i].UserID]; ok && entries[i].UserName == "" {
			entries[i].UserName = in.name
			entries[i].Avatar = in.avatar
		}
	}
	return nil
}

// Timezone retourne le fuseau horaire stocké de l'utilisateur (vide = UTC).
// C'est le fuseau stocké qui fait foi pour la frontière de jour, jamais
// l'horloge de l'appareil.
func (s *UserStore) Timezone(ctx context.Context, userID string) (string, error) {
	var tz string
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(timezone,'') FROM users WHERE id=$1 AND deleted_at IS NULL
	`, userID).Scan(&tz)
	if err != nil {
		return "", storeErr("query user timezone", err)
	}
	return tz, nil
}
