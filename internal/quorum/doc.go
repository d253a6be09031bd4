// Package quorum provides majority arithmetic and the parallel broadcast
// primitive used by the register protocol: fan a call out to every peer and
// stream each outcome back so the consumer can stop at a majority.
package quorum
