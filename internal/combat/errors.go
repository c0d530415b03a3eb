package combat

import "errors"

var (
	// ErrInvalidParameter reports a bad trial count, probability or
	// hourly setting.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidScenario reports a roster the engine cannot resolve,
	// such as a side without units.
	ErrInvalidScenario = errors.New("invalid scenario")
)
