package binding

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/logging"
)

// Poller repeatedly queries public DNS for a set of verification records
// until all of them match in the same round.
type Poller struct {
	Resolver model.Resolver
	Policy   model.PollPolicy
}

// Wait polls until every record matches within a single round, the policy's
// attempt or wall-clock budget is exhausted (*model.TimeoutError), or ctx is
// cancelled (model.ErrCancelled). The returned states always reflect the
// last observation of every record, whatever the outcome. Records already
// matched in an earlier round are rechecked every round; convergence
// requires one round where all match simultaneously.
func (p *Poller) Wait(ctx context.Context, records []model.VerificationRecord) ([]*model.PropagationState, error) {
	log := logging.FromContext(ctx)

	states := make([]*model.PropagationState, len(records))
	for i, r := range records {
		states[i] = &model.PropagationState{Record: r}
	}

	start := time.Now()
	var deadline time.Time
	if p.Policy.Deadline > 0 {
		deadline = start.Add(p.Policy.Deadline)
	}

	attempts := 0
	for {
		if ctx.Err() != nil {
			return states, model.ErrCancelled
		}

		attempts++
		p.round(ctx, states, attempts)

		converged := true
		for _, s := range states {
			log.Debug(ctx, "propagation check",
				"record", s.Record.Name, "type", string(s.Record.Type),
				"matched", s.Matched, "observed", s.ObservedValue, "attempt", attempts)
			if !s.Matched {
				converged = false
			}
		}
		if converged {
			log.Info(ctx, "dns propagation converged", "attempts", attempts, "elapsed", time.Since(start).Round(time.Second).String())
			return states, nil
		}

		if p.Policy.MaxAttempts > 0 && attempts >= p.Policy.MaxAttempts {
			return states, &model.TimeoutError{States: states, Attempts: attempts, Elapsed: time.Since(start)}
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return states, &model.TimeoutError{States: states, Attempts: attempts, Elapsed: time.Since(start)}
		}

		timer := time.NewTimer(p.Policy.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return states, model.ErrCancelled
		case <-timer.C:
		}

		// The deadline may have passed during the sleep; do not start
		// another round on a spent budget.
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return states, &model.TimeoutError{States: states, Attempts: attempts, Elapsed: time.Since(start)}
		}
	}
}

// Check performs a single polling round and reports whether all records
// matched. Used by the one-shot configuration check.
func (p *Poller) Check(ctx context.Context, records []model.VerificationRecord) ([]*model.PropagationState, bool) {
	states := make([]*model.PropagationState, len(records))
	for i, r := range records {
		states[i] = &model.PropagationState{Record: r}
	}
	p.round(ctx, states, 1)
	for _, s := range states {
		if !s.Matched {
			return states, false
		}
	}
	return states, true
}

// round issues one concurrent query per record. The round is a
// synchronization point: every query completes (or times out on its own
// per-query budget) before the caller evaluates convergence. A failed
// resolution is a failed attempt for that record, not a fatal error.
func (p *Poller) round(ctx context.Context, states []*model.PropagationState, attempt int) {
	var wg sync.WaitGroup
	for _, s := range states {
		wg.Add(1)
		go func(s *model.PropagationState) {
			defer wg.Done()
			qctx := ctx
			if p.Policy.QueryTimeout > 0 {
				var cancel context.CancelFunc
				qctx, cancel = context.WithTimeout(ctx, p.Policy.QueryTimeout)
				defer cancel()
			}
			values, err := p.Resolver.Resolve(qctx, s.Record.Name, s.Record.Type)
			s.LastCheckedAt = time.Now()
			s.Attempts = attempt
			if err != nil || len(values) == 0 {
				if err != nil && !errors.Is(err, model.ErrRecordNotFound) {
					logging.FromContext(ctx).Debug(ctx, "dns query failed",
						"record", s.Record.Name, "type", string(s.Record.Type), "err", err.Error())
				}
				s.Matched = false
				return
			}
			s.ObservedValue = values[0]
			s.Matched = false
			for _, v := range values {
				if s.Record.Matches(v) {
					s.ObservedValue = v
					s.Matched = true
					break
				}
			}
		}(s)
	}
	wg.Wait()
}
