package services

import "errors"

// Ошибки, общие для сервисов и маппинга HTTP.
var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnsupportedFormat  = errors.New("unsupported bracket format")
	ErrNoApprovedTeams    = errors.New("no approved teams registered for this tournament")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrInvalidGapMinutes  = errors.New("gap minutes must not be negative")
)
