package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/vinayw02/StepQuest/internal/models"
)

// MembershipStore matérialise l'ensemble des membres d'un scope (snapshot au
// moment de l'appel). Le graphe d'amis et les rosters de groupes sont la
// source de vérité externe ; le moteur de classement ne consomme que les ids.
type MembershipStore struct {
	pool *pgxpool.Pool
}

func NewMembershipStore(pool *pgxpool.Pool) *MembershipStore {
	return &MembershipStore{pool: pool}
}

func (s *MembershipStore) Members(ctx context.Context, scope model.Scope) ([]string, error) {
	switch scope.Kind {
	case model.ScopeGlobal:
		return s.queryIDs(ctx, `SELECT id FROM users WHERE deleted_at IS NULL`)

	case model.ScopeFriends:
		// L'utilisateur figure dans son propre classement d'amis
		return s.queryIDs(ctx, `
			SELECT friend_id FROM friendships WHERE user_id=$1 AND deleted_at IS NULL
			UNION
			SELECT $1
		`, scope.ID)

	case model.ScopeGroup:
		return s.queryIDs(ctx, `
			SELECT user_id FROM group_members WHERE group_id=$1 AND deleted_at IS NULL
		`, scope.ID)
	}

	return nil, fmt.Errorf("unknown scope kind %q", scope.Kind)
}

func (s *MembershipStore) queryIDs(ctx context.Context, sql string, args ...interface{}) ([]string, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeErr("query scope members", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan member id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("read scope members", err)
	}
	return ids, nil
}
