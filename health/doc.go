// Package health provides liveness checks for the module's stores.
//
// A Checker reports the status of one component; an Aggregator fans a set
// of checkers out with a shared timeout and folds their results into a
// single status. Checkers for the cache and session stores are included.
package health
