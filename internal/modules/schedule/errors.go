package schedule

import "errors"

var (
	ErrNotFound           = errors.New("schedule not found")
	ErrDuplicateTitle     = errors.New("schedule with this title already exists")
	ErrDailyLimitExceeded = errors.New("schedule limit exceeded: maximum 5 schedules allowed per day")
	ErrValidation         = errors.New("validation error")
)
