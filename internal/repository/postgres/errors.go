package postgres

import "errors"

// Ошибки данных в базе
var (
	ErrMalformedRow = errors.New("malformed row")
)
