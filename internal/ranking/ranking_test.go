package ranking

import (
	"reflect"
	"testing"
)

func TestRankOrderingAndTieBreak(t *testing.T) {
	members := []string{"carol", "alice", "bob", "dave"}
	metrics := map[string]int{
		"alice": 9000,
		"bob":   12000,
		"carol": 9000,
		// dave n'a aucun enregistrement : score 0, classé quand même
	}

	entries := Rank(members, metrics, "carol", 0)

	wantOrder := []string{"bob", "alice", "carol", "dave"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantOrder))
	}
	for i, id := range wantOrder {
		if entries[i].UserID != id {
			t.Errorf("position %d: got %s, want %s", i, entries[i].UserID, id)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("position %d: rank %d, want %d", i, entries[i].Rank, i+1)
		}
	}

	// À score égal (alice/carol à 9000), rangs distincts consécutifs
	if entries[1].Rank == entries[2].Rank {
		t.Error("tied entries share a rank")
	}
	if !entries[2].IsCaller {
		t.Error("caller entry not annotated")
	}
	if entries[0].IsCaller || entries[1].IsCaller || entries[3].IsCaller {
		t.Error("non-caller entry annotated as caller")
	}
}

// Deux appels avec des entrées identiques (égalités comprises) produisent une
// sortie identique.
func TestRankDeterminism(t *testing.T) {
	members := []string{"u3", "u1", "u5", "u2", "u4"}
	metrics := map[string]int{"u1": 100, "u2": 100, "u3": 100, "u4": 50, "u5": 100}

	first := Rank(members, metrics, "u2", 0)
	second := Rank(members, metrics, "u2", 0)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated calls with identical inputs diverged")
	}

	// Ordre indépendant de l'ordre d'entrée des membres
	shuffled := []string{"u5", "u4", "u3", "u2", "u1"}
	third := Rank(shuffled, metrics, "u2", 0)
	if !reflect.DeepEqual(first, third) {
		t.Fatal("member input order leaked into the ranking")
	}
}

func TestRankCompletenessAndContiguity(t *testing.T) {
	members := []string{"a", "b", "c", "d", "e", "f", "g"}
	metrics := map[string]int{"a": 10, "b": 10, "c": 10, "d": 0, "e": 0}

	entries := Rank(members, metrics, "", 0)

	if len(entries) != len(members) {
		t.Fatalf("got %d entries for %d members", len(entries), len(members))
	}
	seen := map[int]bool{}
	for _, e := range entries {
		if seen[e.Rank] {
			t.Fatalf("duplicate rank %d", e.Rank)
		}
		seen[e.Rank] = true
	}
	for r := 1; r <= len(members); r++ {
		if !seen[r] {
			t.Fatalf("missing rank %d", r)
		}
	}
}

func TestRankEmptyScope(t *testing.T) {
	entries := Rank(nil, map[string]int{"ghost": 99}, "ghost", 0)
	if entries == nil || len(entries) != 0 {
		t.Fatalf("empty scope should yield an empty list, got %v", entries)
	}
}

func TestRankLimit(t *testing.T) {
	members := []string{"a", "b", "c", "d", "e"}
	metrics := map[string]int{"a": 5, "b": 4, "c": 3, "d": 2, "e": 1}

	entries := Rank(members, metrics, "e", 3)
	if len(entries) != 3 {
		t.Fatalf("limit 3 returned %d entries", len(entries))
	}
	// L'appelant hors fenêtre n'est PAS réinjecté ; son rang passe par une
	// consultation séparée
	for _, e := range entries {
		if e.UserID == "e" {
			t.Fatal("out-of-window caller was auto-included")
		}
	}
	// Les rangs de la fenêtre tronquée restent 1..limit
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("truncated rank %d, want %d", e.Rank, i+1)
		}
	}
}

func TestRankDuplicateMemberIDs(t *testing.T) {
	entries := Rank([]string{"a", "a", "b"}, map[string]int{"a": 10, "b": 5}, "", 0)
	if len(entries) != 2 {
		t.Fatalf("duplicate member ids produced %d entries, want 2", len(entries))
	}
}

// Scénario de bout en bout : trois utilisateurs, historiques constants,
// 10000 pas aujourd'hui chacun. Égalité parfaite sur les pas du jour,
// départage par user_id croissant.
func TestRankAllTied(t *testing.T) {
	members := []string{"user3", "user1", "user2"}
	metrics := map[string]int{"user1": 10000, "user2": 10000, "user3": 10000}

	entries := Rank(members, metrics, "user2", 0)

	want := []struct {
		id   string
		rank int
	}{{"user1", 1}, {"user2", 2}, {"user3", 3}}
	for i, w := range want {
		if entries[i].UserID != w.id || entries[i].Rank != w.rank {
			t.Errorf("position %d: got (%s, %d), want (%s, %d)",
				i, entries[i].UserID, entries[i].Rank, w.id, w.rank)
		}
	}
}
