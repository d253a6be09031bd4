// Package register implements the alpha consensus register: the per-process
// state machine that plays both the acceptor role (answering Read/Write
// requests from remote proposers) and the proposer role (driving one
// read-stage/write-stage round over a majority of peers).
package register
