// Package batch runs the full-theory batch parse on an auxiliary goroutine,
// streaming ordered progress and log events plus exactly one terminal Done
// event, with an in-process variant for callers that forgo the worker path.
package batch

import "github.com/verity-lang/verity/core/tree"

// Event is one message from the worker to the initiator. Events are
// fire-and-forget, delivered in send order, and there is no acknowledgement
// protocol: Progress and Log are advisory, Done terminates the stream.
type Event interface {
	isEvent()
}

// ProgressEvent reports that entry index of count has been processed.
type ProgressEvent struct {
	Index int
	Count int
}

// LogEvent carries a worker log line.
type LogEvent struct {
	Text string
}

// DoneEvent carries the full result mapping and terminates the batch.
type DoneEvent struct {
	Result map[string]*tree.Node
}

func (ProgressEvent) isEvent() {}
func (LogEvent) isEvent()      {}
func (DoneEvent) isEvent()     {}
