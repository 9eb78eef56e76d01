package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/vinayw02/StepQuest/internal/models"
)

// RankingCache : classements précalculés, une ligne par utilisateur par jour
// et par combinaison scope × période. Une ligne n'est valable que pour une
// lecture le même jour calendaire (snapshot_date) ; le jour suivant, la
// lecture fait un miss et déclenche un recalcul : on ne sert jamais de
// données périmées.
type RankingCache struct {
	pool *pgxpool.Pool
}

func NewRankingCache(pool *pgxpool.Pool) *RankingCache {
	return &RankingCache{pool: pool}
}

// Get retourne le classement caché du jour, ou (nil, nil) sur un miss.
func (c *RankingCache) Get(ctx context.Context, scope model.Scope, periodKey string, day time.Time) ([]model.LeaderboardEntry, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT lc.user_id, COALESCE(u.name,''), COALESCE(u.avatar,''), lc.rank, lc.score
		FROM leaderboard_cache lc
		LEFT JOIN users u ON u.id = lc.user_id
		WHERE lc.scope_kind=$1 AND lc.scope_id=$2 AND lc.period_key=$3 AND lc.snapshot_date=$4
		ORDER BY lc.rank
	`, string(scope.Kind), scope.ID, periodKey, day.Format("2006-01-02"))
	if err != nil {
		return nil, storeErr("query ranking cache", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Avatar, &e.Rank, &e.Score); err != nil {
			return nil, storeErr("scan cached entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("read ranking cache", err)
	}

	// nil (et pas une liste vide) = miss : un scope réellement vide est aussi
	// recalculé, le recalcul est borné par la taille du scope
	return entries, nil
}

// Put remplace le snapshot du jour pour ce scope × période. Les recalculs
// concurrents convergent vers le même contenu, dernier écrit gagne.
func (c *RankingCache) Put(ctx context.Context, scope model.Scope, periodKey string, day time.Time, entries []model.LeaderboardEntry) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin cache refresh", err)
	}
	defer tx.Rollback(ctx)

	snapshot := day.Format("2006-01-02")

	_, err = tx.Exec(ctx, `
		DELETE FROM leaderboard_cache
		WHERE scope_kind=$1 AND scope_id=$2 AND period_key=$3
	`, string(scope.Kind), scope.ID, periodKey)
	if err != nil {
		return storeErr("clear ranking cache", err)
	}

	for _, e := range entries {
		_, err = tx.Exec(ctx, `
			INSERT INTO leaderboard_cache(scope_kind, scope_id, period_key, snapshot_date, user_id, rank, score, updated_at)
			VALUES($1, $2, $3, $4, $5, $6, $7, NOW())
			ON CONFLICT (scope_kind, scope_id, period_key, snapshot_date, user_id)
			DO UPDATE SET rank = EXCLUDED.rank, score = EXCLUDED.score, updated_at = NOW()
		`, string(scope.Kind), scope.ID, periodKey, snapshot, e.UserID, e.Rank, e.Score)
		if err != nil {
			return storeErr("write cached entry", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit cache refresh", err)
	}
	return nil
}
