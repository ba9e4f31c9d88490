// Package reaper runs periodic cleanup passes over the module's stores.
//
// A Reaper drives a set of Sweepers on a fixed interval. Sweeper failures
// and panics are logged and never stop the schedule; the loop exits only
// when its context is canceled.
package reaper
