package config

import "go.uber.org/fx"

// Module exposes the configuration loader to fx.
var Module = fx.Provide(Load)
