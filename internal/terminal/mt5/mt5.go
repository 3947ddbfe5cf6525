// Package mt5 talks to a MetaTrader 5 bridge gateway over HTTP. The gateway
// owns the terminal process; this client only opens a session, pulls deal
// history and shuts the session down again.
package mt5

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/types"
)

type Params struct {
	BaseURL  string
	Login    int64
	Password string
	Server   string
	Timeout  time.Duration
}

type Opener struct {
	p  Params
	hc *http.Client
}

func NewOpener(p Params) *Opener {
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
	return &Opener{p: p, hc: &http.Client{Timeout: p.Timeout}}
}

// Open connects and logs in in one step, mirroring the terminal's own
// initialize-with-credentials call.
func (o *Opener) Open(ctx context.Context) (interfaces.Session, error) {
	body, _ := json.Marshal(map[string]any{
		"login":    o.p.Login,
		"password": o.p.Password,
		"server":   o.p.Server,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.p.BaseURL+"/connect", bytes.NewReader(body))
	if err != nil {
		return nil, &types.ConnectionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.hc.Do(req)
	if err != nil {
		return nil, &types.ConnectionError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, &types.ConnectionError{Err: fmt.Errorf("bridge http %d", resp.StatusCode)}
	}

	var r struct {
		Session string `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, &types.ConnectionError{Err: err}
	}
	if r.Session == "" {
		return nil, &types.ConnectionError{Err: fmt.Errorf("bridge returned no session id")}
	}
	return &session{base: o.p.BaseURL, id: r.Session, hc: o.hc}, nil
}

type session struct {
	base string
	id   string
	hc   *http.Client
	once sync.Once
}

func (s *session) History(ctx context.Context, from, to time.Time) ([]types.RawDeal, error) {
	q := url.Values{}
	q.Set("session", s.id)
	q.Set("from", strconv.FormatInt(from.UnixMilli(), 10))
	q.Set("to", strconv.FormatInt(to.UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/history_deals?"+q.Encode(), nil)
	if err != nil {
		return nil, &types.RetrievalError{Err: err}
	}
	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, &types.RetrievalError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, &types.RetrievalError{Err: fmt.Errorf("bridge http %d", resp.StatusCode)}
	}

	var r struct {
		Deals []types.RawDeal `json:"deals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, &types.RetrievalError{Err: err}
	}
	return r.Deals, nil
}

// Close shuts the bridge session down. Idempotent; a failed shutdown is not
// observable to the caller since there is nothing useful it could do.
func (s *session) Close() {
	s.once.Do(func() {
		body, _ := json.Marshal(map[string]string{"session": s.id})
		req, err := http.NewRequest(http.MethodPost, s.base+"/shutdown", bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if resp, err := s.hc.Do(req); err == nil {
			resp.Body.Close()
		}
	})
}
