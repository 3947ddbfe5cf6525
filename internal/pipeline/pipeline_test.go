package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/narrate"
	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/types"
)

type fakeSession struct {
	histErr    error
	histCalls  int
	closeCalls int
}

func (s *fakeSession) History(ctx context.Context, from, to time.Time) ([]types.RawDeal, error) {
	s.histCalls++
	if s.histErr != nil {
		return nil, s.histErr
	}
	return nil, nil
}

func (s *fakeSession) Close() { s.closeCalls++ }

type fakeOpener struct {
	sess  *fakeSession
	err   error
	opens int
}

func (o *fakeOpener) Open(ctx context.Context) (interfaces.Session, error) {
	o.opens++
	if o.err != nil {
		return nil, o.err
	}
	return o.sess, nil
}

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (c *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls++
	return c.reply, c.err
}

type fakeDispatcher struct {
	err   error
	calls int
	last  *types.CompositeReport
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, report *types.CompositeReport) error {
	d.calls++
	d.last = report
	return d.err
}

func newController(opener interfaces.SessionOpener, llmEnabled bool, llm *fakeCompleter, disp interfaces.Dispatcher) *Controller {
	return New(opener, summary.NewBuilder(time.UTC), narrate.New(llmEnabled, llm, time.UTC), disp)
}

var testNow = time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)

func TestRunOnceSuccess(t *testing.T) {
	sess := &fakeSession{}
	llm := &fakeCompleter{reply: "Solid week."}
	disp := &fakeDispatcher{}
	ctrl := newController(&fakeOpener{sess: sess}, true, llm, disp)

	res := ctrl.RunOnce(context.Background(), testNow)

	if res.Status != types.RunSuccess {
		t.Errorf("Status = %v, want SUCCESS", res.Status)
	}
	if res.Stage != types.StageSessionClosed {
		t.Errorf("Stage = %v, want SESSION_CLOSED", res.Stage)
	}
	if res.Report == nil || res.Report.Narrative != "Solid week." {
		t.Errorf("Report = %+v", res.Report)
	}
	if sess.histCalls != 4 {
		t.Errorf("history calls = %d, want 4", sess.histCalls)
	}
	if llm.calls != 1 {
		t.Errorf("llm calls = %d, want exactly 1", llm.calls)
	}
	if disp.calls != 1 {
		t.Errorf("dispatch calls = %d, want 1", disp.calls)
	}
	if sess.closeCalls != 1 {
		t.Errorf("session closed %d times, want exactly 1", sess.closeCalls)
	}
}

func TestRunOnceSessionOpenFails(t *testing.T) {
	llm := &fakeCompleter{}
	disp := &fakeDispatcher{}
	ctrl := newController(&fakeOpener{err: &types.ConnectionError{Err: errors.New("refused")}}, true, llm, disp)

	res := ctrl.RunOnce(context.Background(), testNow)

	if res.Status != types.RunFailed || res.Stage != types.StageSessionOpen {
		t.Errorf("got %v/%v, want FAILED/SESSION_OPEN", res.Status, res.Stage)
	}
	if res.Report != nil {
		t.Error("no report expected when session open fails")
	}
	var cerr *types.ConnectionError
	if !errors.As(res.Err, &cerr) {
		t.Errorf("Err = %v, want ConnectionError", res.Err)
	}
	if llm.calls != 0 || disp.calls != 0 {
		t.Error("no collaborator calls expected after open failure")
	}
}

func TestRunOnceSummarizingFailsStillClosesSession(t *testing.T) {
	sess := &fakeSession{histErr: &types.RetrievalError{Err: errors.New("bridge down")}}
	llm := &fakeCompleter{}
	disp := &fakeDispatcher{}
	ctrl := newController(&fakeOpener{sess: sess}, true, llm, disp)

	res := ctrl.RunOnce(context.Background(), testNow)

	if res.Status != types.RunFailed || res.Stage != types.StageSummarizing {
		t.Errorf("got %v/%v, want FAILED/SUMMARIZING", res.Status, res.Stage)
	}
	var dre *types.DataRetrievalError
	if !errors.As(res.Err, &dre) {
		t.Errorf("Err = %v, want DataRetrievalError", res.Err)
	}
	if sess.closeCalls != 1 {
		t.Errorf("session closed %d times, want exactly 1 even on failure", sess.closeCalls)
	}
	if llm.calls != 0 || disp.calls != 0 {
		t.Error("narrative and dispatch must not run after a summarizing failure")
	}
}

func TestRunOnceNarrativeDisabled(t *testing.T) {
	sess := &fakeSession{}
	llm := &fakeCompleter{reply: "should never be requested"}
	disp := &fakeDispatcher{}
	ctrl := newController(&fakeOpener{sess: sess}, false, llm, disp)

	res := ctrl.RunOnce(context.Background(), testNow)

	if res.Status != types.RunSuccess {
		t.Errorf("Status = %v, want SUCCESS", res.Status)
	}
	if llm.calls != 0 {
		t.Errorf("llm calls = %d, want 0 when disabled", llm.calls)
	}
	if res.Report.Narrative != "" {
		t.Error("narrative must be absent when disabled")
	}
}

func TestRunOnceModelFailureIsNonFatal(t *testing.T) {
	sess := &fakeSession{}
	llm := &fakeCompleter{err: &types.ModelError{Err: errors.New("timeout")}}
	disp := &fakeDispatcher{}
	ctrl := newController(&fakeOpener{sess: sess}, true, llm, disp)

	res := ctrl.RunOnce(context.Background(), testNow)

	if res.Status != types.RunSuccess {
		t.Errorf("Status = %v, want SUCCESS despite model failure", res.Status)
	}
	if res.Report == nil || res.Report.Narrative != "" {
		t.Errorf("Report = %+v, want present with absent narrative", res.Report)
	}
	if llm.calls != 1 {
		t.Errorf("llm calls = %d, want exactly 1 (no retry)", llm.calls)
	}
	if disp.calls != 1 {
		t.Error("dispatch must still run after model failure")
	}
	if sess.closeCalls != 1 {
		t.Errorf("session closed %d times, want 1", sess.closeCalls)
	}
}

func TestRunOnceDeliveryFailureIsPartialSuccess(t *testing.T) {
	sess := &fakeSession{}
	disp := &fakeDispatcher{err: &types.DeliveryError{Err: errors.New("telegram 502")}}
	ctrl := newController(&fakeOpener{sess: sess}, false, &fakeCompleter{}, disp)

	res := ctrl.RunOnce(context.Background(), testNow)

	if res.Status != types.RunPartialSuccess || res.Stage != types.StageDispatched {
		t.Errorf("got %v/%v, want PARTIAL_SUCCESS/DISPATCHED", res.Status, res.Stage)
	}
	if res.Report == nil {
		t.Error("computed report must be returned for inspection despite delivery failure")
	}
	var derr *types.DeliveryError
	if !errors.As(res.Err, &derr) {
		t.Errorf("Err = %v, want DeliveryError", res.Err)
	}
	if sess.closeCalls != 1 {
		t.Errorf("session closed %d times, want 1", sess.closeCalls)
	}
}

func TestRunOnceIndependentRuns(t *testing.T) {
	opener := &fakeOpener{sess: &fakeSession{}}
	ctrl := newController(opener, false, &fakeCompleter{}, &fakeDispatcher{})

	for i := 0; i < 3; i++ {
		if res := ctrl.RunOnce(context.Background(), testNow); res.Status != types.RunSuccess {
			t.Fatalf("run %d: status = %v", i, res.Status)
		}
	}
	if opener.opens != 3 {
		t.Errorf("opens = %d, want one session per run", opener.opens)
	}
}
