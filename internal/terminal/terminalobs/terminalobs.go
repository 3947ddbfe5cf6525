// Package terminalobs wraps a SessionOpener with logging and tracing.
package terminalobs

import (
	"context"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

type observableOpener struct {
	opener interfaces.SessionOpener
}

var _ interfaces.SessionOpener = (*observableOpener)(nil)

func Wrap(opener interfaces.SessionOpener) interfaces.SessionOpener {
	return &observableOpener{opener: opener}
}

func (o *observableOpener) Open(ctx context.Context) (interfaces.Session, error) {
	ctx, span := trace.StartSpan(ctx, "terminal.Open")
	defer span.End()

	sess, err := o.opener.Open(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to open terminal session", err)
		return nil, err
	}
	logger.Info(ctx, "Terminal session opened")
	return &observableSession{sess: sess}, nil
}

type observableSession struct {
	sess interfaces.Session
}

var _ interfaces.Session = (*observableSession)(nil)

func (s *observableSession) History(ctx context.Context, from, to time.Time) ([]types.RawDeal, error) {
	ctx, span := trace.StartSpan(ctx, "terminal.History")
	defer span.End()

	deals, err := s.sess.History(ctx, from, to)
	if err != nil {
		logger.ErrorWithErr(ctx, "History retrieval failed", err,
			"from", from.Format(time.RFC3339),
			"to", to.Format(time.RFC3339),
		)
		return nil, err
	}
	logger.Debug(ctx, "History retrieved",
		"from", from.Format(time.RFC3339),
		"to", to.Format(time.RFC3339),
		"deals", len(deals),
	)
	return deals, nil
}

func (s *observableSession) Close() {
	s.sess.Close()
	logger.Info(context.Background(), "Terminal session closed")
}
