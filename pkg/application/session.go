package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

// Composer is what a front-end drives: it reports edits and asks for a draft.
type Composer interface {
	// TextChanged records the edited text and returns it formatted.
	TextChanged(text string) string
	// Commit starts a draft for the current text. The channel yields
	// exactly one Result.
	Commit(ctx context.Context) (<-chan draft.Result, error)
}

// Session is a single-user Composer allowing one draft in flight.
type Session struct {
	svc *DraftService

	mu   sync.Mutex
	fsm  *draft.SessionMachine
	text string
	last draft.Result
}

var _ Composer = (*Session)(nil)

func NewSession(svc *DraftService) (*Session, error) {
	fsm, err := draft.NewSessionMachine()
	if err != nil {
		return nil, err
	}
	return &Session{svc: svc, fsm: fsm, text: draft.InitialText}, nil
}

func (s *Session) TextChanged(text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = draft.FormatEdit(s.text, text)
	switch s.fsm.Current() {
	case draft.StateDrafted, draft.StateFailed:
		// An edit after a finished draft returns the session to idle.
		_ = s.fsm.Transition(draft.EventEdit)
	}
	return s.text
}

func (s *Session) Commit(ctx context.Context) (<-chan draft.Result, error) {
	s.mu.Lock()
	if err := s.fsm.Transition(draft.EventSubmit); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	prompt := s.text
	s.mu.Unlock()

	inner := s.svc.RequestCompletion(ctx, prompt)
	out := make(chan draft.Result, 1)
	go func() {
		defer close(out)
		res, ok := <-inner
		if !ok {
			res = draft.Failed("", prompt, fmt.Errorf("draft channel closed without a result"))
		}
		s.finish(res)
		out <- res
	}()
	return out, nil
}

func (s *Session) finish(res draft.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := draft.EventSucceed
	if !res.OK() {
		event = draft.EventFail
	}
	_ = s.fsm.Transition(event)
	s.last = res
}

// Text returns the current formatted composer text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// State returns the session state name.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsm.Current()
}

// Busy reports whether a draft is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsm.Busy()
}

// Last returns the most recent finished result, if any.
func (s *Session) Last() (draft.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.last.ID != "" || s.last.Err != nil
}
