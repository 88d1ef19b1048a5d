package events

import (
	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers a trigger hook that logs every dispatched
// event at debug level.
func RegisterDebugLogger(r *Registry, logger zerolog.Logger) {
	r.OnTrigger(func(event Event, _ any) {
		logger.Debug().Str("event", string(event)).Msg("event fired")
	})
}
