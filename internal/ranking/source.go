package ranking

import (
	"context"
	"time"

	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/period"
)

// MembershipResolver matérialise l'ensemble des membres d'un scope au moment
// de l'appel (snapshot, pas d'abonnement).
type MembershipResolver interface {
	Members(ctx context.Context, scope model.Scope) ([]string, error)
}

// StepSummer somme les pas de chaque utilisateur sur une fenêtre de dates
// inclusive. Un utilisateur sans aucun enregistrement peut être absent de la
// map retournée.
type StepSummer interface {
	SumRange(ctx context.Context, userIDs []string, start, end time.Time) (map[string]int, error)
}

// Cache est le cache dénormalisé de classements précalculés. Get retourne
// (nil, nil) sur un miss ; une ligne écrite un jour antérieur est un miss,
// jamais servie telle quelle.
type Cache interface {
	Get(ctx context.Context, scope model.Scope, periodKey string, day time.Time) ([]model.LeaderboardEntry, error)
	Put(ctx context.Context, scope model.Scope, periodKey string, day time.Time, entries []model.LeaderboardEntry) error
}

// Source produit un classement pour un scope, une politique de reset et une
// date de référence. Deux implémentations (cache précalculé, agrégation
// directe) composées par FallbackSource : le cache est une optimisation de
// performance, jamais une variante sémantique : les deux chemins doivent
// produire un ordre identique.
type Source interface {
	Fetch(ctx context.Context, scope model.Scope, policy period.Policy, ref time.Time, callerID string, limit int) ([]model.LeaderboardEntry, error)
}

// DirectSource recalcule le classement depuis les enregistrements bruts :
// membres du scope, somme des pas sur la fenêtre résolue, puis Rank.
type DirectSource struct {
	Members MembershipResolver
	Steps   StepSummer
}

func NewDirectSource(members MembershipResolver, steps StepSummer) *DirectSource {
	return &DirectSource{Members: members, Steps: steps}
}

func (s *DirectSource) Fetch(ctx context.Context, scope model.Scope, policy period.Policy, ref time.Time, callerID string, limit int) ([]model.LeaderboardEntry, error) {
	ids, err := s.Members.Members(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.LeaderboardEntry{}, nil
	}

	w := period.Resolve(policy, ref)
	sums, err := s.Steps.SumRange(ctx, ids, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	return Rank(ids, sums, callerID, limit), nil
}

// CachedSource sert le classement précalculé du jour ; sur un miss (aucune
// ligne pour le jour courant), il recalcule via la source directe, écrit le
// résultat complet, puis sert. Stratégie pull : aucun refresh à l'écriture
// des pas. Les recalculs concurrents sont idempotents, le dernier écrit
// gagne au niveau du stockage.
type CachedSource struct {
	Cache  Cache
	Direct *DirectSource
}

func NewCachedSource(cache Cache, direct *DirectSource) *CachedSource {
	return &CachedSource{Cache: cache, Direct: direct}
}

func (s *CachedSource) Fetch(ctx context.Context, scope model.Scope, policy period.Policy, ref time.Time, callerID string, limit int) ([]model.LeaderboardEntry, error) {
	day := period.Day(ref)
	key := period.Key(policy, period.Resolve(policy, ref))

	entries, err := s.Cache.Get(ctx, scope, key, day)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		// Recalcul complet (sans limite ni appelant) pour que la ligne de
		// cache serve tous les lecteurs du jour
		entries, err = s.Direct.Fetch(ctx, scope, policy, ref, "", 0)
		if err != nil {
			return nil, err
		}
		// L'écriture du cache est best-effort : le classement vient d'être
		// recalculé, un échec ici ne doit pas faire échouer la lecture
		_ = s.Cache.Put(ctx, scope, key, day, entries)
	}

	Annotate(entries, callerID)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// FallbackSource essaie la source primaire et bascule sur la secondaire en
// cas d'erreur. Le contrat de fallback est ainsi testable isolément, au lieu
// d'un try/catch imbriqué dans chaque appelant.
type FallbackSource struct {
	Primary   Source
	Secondary Source
}

func NewFallbackSource(primary, secondary Source) *FallbackSource {
	return &FallbackSource{Primary: primary, Secondary: secondary}
}

func (s *FallbackSource) Fetch(ctx context.Context, scope model.Scope, policy period.Policy, ref time.Time, callerID string, limit int) ([]model.LeaderboardEntry, error) {
	entries, err := s.Primary.Fetch(ctx, scope, policy, ref, callerID, limit)
	if err == nil {
		return entries, nil
	}
	return s.Secondary.Fetch(ctx, scope, policy, ref, callerID, limit)
}
