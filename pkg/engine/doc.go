// Package engine assembles responses from generator events.
//
// The Assembler is a single-writer state machine that owns one Response for
// its whole lifecycle and is the only component allowed to mutate it. A
// Generator collaborator produces ordered Events (append item, item status,
// usage, error, finalize); the Engine validates the inbound request, splices
// prior conversation turns when previous_response_id is set, drives the
// assembler from the generator's events, and hands the result to a
// ResponseWriter either as one full response or as ordered stream events.
package engine
