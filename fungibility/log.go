package fungibility

import "github.com/btcsuite/btclog"

var log = btclog.Disabled

// UseLogger sets the logger used by the solver, logging is disabled by default.
func UseLogger(logger btclog.Logger) {
	log = logger
}
