// Package session sequences the physical steps of making a tape: punch
// leader, tape and trailer, have the operator move the tape to the
// reader, read it back and verify it. Every failure is final; the
// operator restarts the whole run.
package session

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ezrec/gnt4604/channel"
	"github.com/ezrec/gnt4604/encode"
	"github.com/ezrec/gnt4604/tape"
)

// Operator is the person at the punch.
type Operator interface {
	// Prompt shows message and waits for the operator to be ready.
	Prompt(ctx context.Context, message string) error
}

// Session punches one tape and verifies it.
type Session struct {
	Encoder  encode.Encoder
	Source   []byte // Source document, consumed by the first Step.
	Channel  channel.Channel
	Operator Operator
	Runout   int // Leader and trailer length.
	Log      zerolog.Logger

	Punch  tape.Punch  // Punch settings. Channel is filled in by New.
	Reader tape.Reader // Reader settings. Channel is filled in by New.

	State    State
	Err      error      // Why the session failed.
	Expected []byte     // What was punched, less leader and trailer.
	Observed []byte     // What was read back, trimmed.
	Stats    tape.Stats // Punch statistics for the whole tape.
}

// New creates a session that punches source through enc on ch.
func New(ch channel.Channel, enc encode.Encoder, op Operator, source []byte) (s *Session) {
	s = &Session{
		Encoder:  enc,
		Source:   source,
		Channel:  ch,
		Operator: op,
		Runout:   tape.RunoutLength,
	}
	s.Punch.Channel = ch
	s.Reader.Channel = ch
	return
}

func (s *Session) runout(ctx context.Context) (err error) {
	stats, err := s.Punch.Runout(ctx, s.Runout)
	s.Stats.Add(stats)
	return
}

// Step advances the session by one state. done is set once the
// session has finished, successfully or not.
func (s *Session) Step(ctx context.Context) (done bool, err error) {
	from := s.State
	if from == Done || from == Failed {
		done = true
		err = s.Err
		return
	}

	defer func() {
		if err != nil {
			s.Log.Error().Stringer("state", from).Err(err).Msg("session failed")
			err = &ErrSession{State: from, Err: err}
			s.Err = err
			s.State = Failed
			done = true
			return
		}
		if s.State != from {
			s.Log.Info().Stringer("state", s.State).Msg("session")
		}
	}()

	switch s.State {
	case Idle:
		var expected []byte
		expected, err = s.Encoder.Encode(s.Source)
		if err != nil {
			return
		}
		s.Expected = expected
		s.Source = nil
		s.Log.Info().Int("characters", len(s.Expected)).Msg("source encoded")

		err = s.runout(ctx)
		if err != nil {
			return
		}
		s.State = LeaderPunched
	case LeaderPunched:
		var stats tape.Stats
		stats, err = s.Punch.Punch(ctx, slices.Values(s.Expected))
		s.Stats.Add(stats)
		if err != nil {
			return
		}
		s.State = PayloadPunched
	case PayloadPunched:
		err = s.runout(ctx)
		if err != nil {
			return
		}
		s.State = TrailerPunched
	case TrailerPunched:
		err = s.Operator.Prompt(ctx, f("Verifying punched tape. Load tape, press RETURN and start reader"))
		if err != nil {
			return
		}
		err = channel.Reload(s.Channel)
		if err != nil {
			return
		}
		s.State = AwaitingReload
	case AwaitingReload:
		var buf []byte
		buf, err = s.Reader.Read(ctx)
		if err != nil {
			return
		}
		s.Observed = tape.Trim(buf)
		s.Log.Info().Int("characters", len(buf)).Int("trimmed", len(s.Observed)).Msg("tape read back")
		s.State = Verifying
	case Verifying:
		err = tape.Verify(s.Expected, s.Observed)
		if err != nil {
			return
		}
		s.Log.Info().
			Int("characters", s.Stats.Bytes).
			Int("flow_control", s.Stats.FlowControl).
			Int("stalls", s.Stats.Stalls).
			Msg("tape verified")
		s.State = Done
		done = true
	}

	return
}

// Run steps the session until it is done.
func (s *Session) Run(ctx context.Context) (err error) {
	for done := false; !done; {
		done, err = s.Step(ctx)
	}
	return
}
