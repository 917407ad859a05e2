package service

import "errors"

// Sentinel errors mapped to HTTP statuses in the handler layer.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCredentials = errors.New("credenciales invalidas")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya existe")
	ErrForbidden          = errors.New("operacion no permitida")

	// Price list tier rules.
	ErrDuplicateTier = errors.New("ya existe una lista con ese porcentaje")
	ErrLastTier      = errors.New("no se puede eliminar la ultima lista de precios")

	// Order rules.
	ErrInvalidSelectedList = errors.New("la lista seleccionada no es valida para todos los productos")
)
