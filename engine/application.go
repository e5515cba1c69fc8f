package engine

import (
	"github.com/spatialworks/maquette/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Path to the TOML configuration file. Empty uses the defaults.
	ConfigPath string
	LogLevel   core.LogLevel
}
