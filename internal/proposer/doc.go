// Package proposer drives repeated rounds of the register protocol until a
// value is decided, attempting rounds only while the local process believes
// itself to be leader.
package proposer
