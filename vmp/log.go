package vmp

import "github.com/btcsuite/btclog"

// log is disabled by default until UseLogger is called.
var log = btclog.Disabled

// UseLogger sets the logger used by the package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
