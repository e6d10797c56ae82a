package domain

import "errors"

var (
	ErrCityNotFound = errors.New("city not found")
	ErrCityExists   = errors.New("city with this name already exists")
	ErrCityHasHubs  = errors.New("city has linked hubs")
	ErrHubNotFound  = errors.New("hub not found")
	ErrHubExists    = errors.New("hub with this name already exists in this city")
	ErrInvalidID    = errors.New("invalid id")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("access forbidden")
)
