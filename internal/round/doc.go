// Package round provides totally ordered round identifiers for the
// register protocol. Rounds order by tick first, process ID as tie-break.
package round
