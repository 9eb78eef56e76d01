package model

import (
	"errors"
)

// Erreurs typées de la frontière I/O. Les calculs internes sont totaux sur
// leurs entrées valides : la seule surface d'échec est le store.
var (
	// ErrStoreUnavailable : le store de pas, de membres ou le cache est
	// injoignable. Propagée sans retry interne (la politique de retry
	// appartient à l'appelant).
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotFound : l'entité demandée n'existe pas (ou est soft-deleted).
	ErrNotFound = errors.New("not found")
)
