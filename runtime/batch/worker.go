package batch

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/invariant"
	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
	"github.com/verity-lang/verity/runtime/parser"
)

// Payload is the startup message sent once to the worker: the ordered
// label-to-formula batch input plus the serializable grammar descriptors the
// worker rebuilds its own grammar session from. Grammar and lexer objects
// never cross the boundary.
type Payload struct {
	Entries            []theory.LabeledFormula
	Rules              []grammar.RuleDescriptor
	Vars               []grammar.VarDescriptor
	Typecodes          map[string]grammar.Kind
	WorkingVarPrefixes map[string]grammar.Kind
}

// PayloadFrom builds the startup payload for a theory's batch parse.
func PayloadFrom(th *theory.Theory) *Payload {
	invariant.NotNil(th, "theory")
	return &Payload{
		Entries:            th.ParsableFormulas(),
		Rules:              th.Rules,
		Vars:               th.Vars,
		Typecodes:          th.Typecodes,
		WorkingVarPrefixes: th.WorkingVarPrefixes,
	}
}

// grammarFrom reconstructs an executable grammar from payload descriptors,
// with a fresh working-variable context for this session.
func grammarFrom(p *Payload) *grammar.Grammar {
	return grammar.Build(p.Rules, p.Vars, p.Typecodes, grammar.NewWorkingVarContext(p.WorkingVarPrefixes))
}

// Handle tracks one in-flight batch. The initiator either consumes Events
// directly or calls Wait, which resolves when the terminal Done event
// arrives. There is no cancellation, timeout or retry: if the worker never
// emits Done, Wait never returns.
type Handle struct {
	events chan Event
	result map[string]*tree.Node
}

// Events exposes the ordered event stream. The channel is closed after the
// terminal Done event.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Wait consumes the event stream, forwarding Progress and Log to the
// reporter, and returns the Done result. r may be nil.
func (h *Handle) Wait(r parser.Reporter) map[string]*tree.Node {
	for ev := range h.events {
		switch e := ev.(type) {
		case ProgressEvent:
			if r != nil {
				r.Progress(e.Index, e.Count)
			}
		case LogEvent:
			if r != nil {
				r.Log(e.Text)
			}
		case DoneEvent:
			h.result = e.Result
		}
	}
	return h.result
}

// Start launches one auxiliary goroutine for this batch - one per call, no
// pool. The payload crosses the boundary as encoded bytes and the worker
// decodes its own copy, so no descriptor slice or map is shared between the
// initiating and the auxiliary execution context.
func Start(p *Payload) *Handle {
	invariant.NotNil(p, "payload")
	raw, err := cbor.Marshal(p)
	invariant.ExpectNoError(err, "encoding batch payload")

	h := &Handle{events: make(chan Event, 16)}
	go func() {
		defer close(h.events)
		var wp Payload
		err := cbor.Unmarshal(raw, &wp)
		invariant.ExpectNoError(err, "decoding batch payload")

		g := grammarFrom(&wp)
		result := parser.ParseAll(wp.Entries, g, &eventReporter{events: h.events})
		h.events <- DoneEvent{Result: result}
	}()
	return h
}

// eventReporter adapts the batch-parse callbacks onto the event stream.
type eventReporter struct {
	events chan<- Event
}

func (r *eventReporter) Progress(index, count int) {
	r.events <- ProgressEvent{Index: index, Count: count}
}

func (r *eventReporter) Log(text string) {
	r.events <- LogEvent{Text: text}
}

// RunSync runs the identical batch-parse algorithm on the caller's own
// goroutine, for environments without threading support. The result is
// indistinguishable from the worker path; only the timing of reporter
// callbacks differs.
func RunSync(p *Payload, r parser.Reporter) map[string]*tree.Node {
	invariant.NotNil(p, "payload")
	return parser.ParseAll(p.Entries, grammarFrom(p), r)
}

// ParseTheory runs the worker-path batch parse for a theory, merges the
// result into the statement model and sets the theory's TreesComplete flag.
// At most one batch may be in flight per theory; concurrent batches are
// undefined and must be serialized by the caller.
func ParseTheory(th *theory.Theory, r parser.Reporter) map[string]*tree.Node {
	result := Start(PayloadFrom(th)).Wait(r)
	th.Merge(result)
	return result
}

// ParseTheorySync is the in-process variant of ParseTheory.
func ParseTheorySync(th *theory.Theory, r parser.Reporter) map[string]*tree.Node {
	result := RunSync(PayloadFrom(th), r)
	th.Merge(result)
	return result
}
