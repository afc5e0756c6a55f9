package ui

import (
	"dropsel/internal/config"
)

// configReloadedMsg carries a freshly loaded config
type configReloadedMsg struct {
	cfg *config.Config
	err error
}

// clearStatusMsg clears the status line if it still shows status seq
type clearStatusMsg struct {
	seq int
}
