// Package monitoring provides a package-level, replaceable logger used by
// every other package in the driver, so a host embedding radardrv can
// redirect its diagnostics without capturing the standard log package.
package monitoring

import "log"

// Logf is called for all driver diagnostics. Defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf. Passing nil silences all driver logging.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
