package trade

import "github.com/aristath/backtrade/portfolio"

// Handler is a link in the trade-processing chain of responsibility.
type Handler interface {
	// SetNext chains next after this handler and returns it, so calls can
	// be composed as h1.SetNext(h2).SetNext(h3).
	SetNext(next Handler) Handler
	// Run processes t and, unless it stops the chain, hands it to the
	// next handler.
	Run(t *Trade) error
}

// ComplianceHandler tries a trade against the portfolio's real broker and
// compliance rules using a snapshot/rollback instead of a deep copy: it
// executes the trade, asks Compliance.Passes, then restores the portfolio
// to its pre-trade state regardless of the outcome. The next handler
// (normally ExecutionHandler) performs the trade for real once compliance
// has passed.
type ComplianceHandler struct {
	next Handler
}

func (h *ComplianceHandler) SetNext(next Handler) Handler {
	h.next = next
	return next
}

func (h *ComplianceHandler) Run(t *Trade) error {
	p := t.Portfolio()
	snapshot := p.Snapshot()
	if err := p.Broker().Execute(t); err != nil {
		if restoreErr := p.Restore(snapshot); restoreErr != nil {
			return restoreErr
		}
		return err
	}
	passed, complianceErr := p.Compliance().Passes(p)
	if err := p.Restore(snapshot); err != nil {
		return err
	}
	if complianceErr != nil {
		return complianceErr
	}
	t.passedCompliance = passed
	if passed {
		t.status = StatePassedCompliance
	} else {
		t.status = StateFailedCompliance
	}
	if h.next != nil {
		return h.next.Run(t)
	}
	return nil
}

// ExecutionHandler performs the trade for real, once it has passed
// compliance.
type ExecutionHandler struct {
	next Handler
}

func (h *ExecutionHandler) SetNext(next Handler) Handler {
	h.next = next
	return next
}

func (h *ExecutionHandler) Run(t *Trade) error {
	if !t.passedCompliance {
		return nil
	}
	t.status = StateSentForExecution
	if err := t.Portfolio().Broker().Execute(t); err != nil {
		return err
	}
	if t.status == StateSentForExecution {
		t.SetDone(t.units)
	}
	if h.next != nil {
		return h.next.Run(t)
	}
	return nil
}

// NewPipeline builds the standard compliance-then-execution chain.
func NewPipeline() Handler {
	compliance := &ComplianceHandler{}
	execution := &ExecutionHandler{}
	compliance.SetNext(execution)
	return compliance
}

// DefaultPipeline is the process-wide trade pipeline, used by TradeEvent.
var DefaultPipeline = NewPipeline()

// compile-time check that Trade satisfies portfolio.TradeExecutor.
var _ portfolio.TradeExecutor = (*Trade)(nil)
