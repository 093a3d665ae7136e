// Package api defines the core protocol types for the Antiphon Responses core.
//
// This package provides all data types needed to model the Responses API wire
// protocol: conversation items, content parts, annotations, computer-use
// actions, tools and tool choice, attribute filters, request/response bodies,
// streaming events, error types, state machine validation, and ID generation.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O. Every polymorphic record is a tagged union: a struct with
// a Type discriminator and exactly one populated variant payload. Decoding is
// strict: a record with a missing or unknown discriminator is rejected, while
// unknown extra fields are dropped without error and never re-emitted.
//
// Core types:
//   - [Item]: Polymorphic unit of conversation (messages, tool calls and
//     their outputs, reasoning traces, item references)
//   - [CreateResponseRequest]: Client request for model inference
//   - [Response]: Server response containing output items
//   - [StreamEvent]: Server-sent event for streaming responses
//   - [ValidationError]: Structured client error with kind, param, and message
package api
