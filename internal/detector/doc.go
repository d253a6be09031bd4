// Package detector implements a heartbeat failure detector over a static
// peer set. It reports the lowest-id process it currently believes alive as
// leader; the proposer consults it before every round attempt.
package detector
