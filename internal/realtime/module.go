package realtime

import (
	"log/slog"

	"go.uber.org/fx"
)

const defaultSubscriberBuffer = 32

func newHub(logger *slog.Logger) *Hub {
	return NewHub(defaultSubscriberBuffer, logger)
}

// Module wires the realtime hub into the application graph.
var Module = fx.Provide(newHub)
