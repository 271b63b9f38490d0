package xp

import (
	"errors"
)

var (
	// ErrUserNotFound l'identifiant ne correspond à aucun utilisateur
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidAmount montant d'XP négatif, aucune mutation tentée
	ErrInvalidAmount = errors.New("invalid xp amount")

	// ErrStoreTimeout le store n'a pas répondu dans le délai imparti
	ErrStoreTimeout = errors.New("user store timeout")
)
