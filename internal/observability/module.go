package observability

import "go.uber.org/fx"

// Module exposes the metrics registry to the fx graph.
var Module = fx.Provide(NewMetrics)
