package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; el ledger nunca
// envuelve uno de estos en otro sentinel.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidAdjustmentType = errors.New("tipo de ajuste inválido")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
)
