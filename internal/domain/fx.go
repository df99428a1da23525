// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/songid-bot/internal/domain/recognition"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	recognition.Module,
)
