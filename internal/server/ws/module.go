package ws

import "go.uber.org/fx"

// Module provides the WebSocket handler to the fx container.
var Module = fx.Provide(NewHandler)
