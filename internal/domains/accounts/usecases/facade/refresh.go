package facade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/quenbyako/accountcache/internal/domains/accounts/entities"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
)

// RefreshAccounts schedules a new account listing. IsUpdatePending becomes
// true before it returns.
func (s *Service) RefreshAccounts() {
	s.pending.begin()
	s.exec.post(s.refreshAccounts)
}

// RefreshRestrictions schedules a reload of the restriction patterns.
// IsUpdatePending becomes true before it returns.
func (s *Service) RefreshRestrictions() {
	s.pending.begin()
	s.exec.post(s.refreshRestrictions)
}

// Run triggers refreshes on platform change broadcasts until ctx is done.
// Without a change source it just waits for ctx.
func (s *Service) Run(ctx context.Context) error {
	if s.changes == nil {
		<-ctx.Done()
		return nil
	}

	events, err := s.changes.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching platform changes: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case kind, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}

				return ErrChangeSourceClosed
			}

			switch kind {
			case ports.ChangeAccounts:
				s.RefreshAccounts()
			case ports.ChangeRestrictions:
				s.RefreshRestrictions()
			default:
				s.log.UnknownChange(ctx, kind)
			}
		}
	}
}

func (s *Service) refreshAccounts(ctx context.Context) {
	defer s.pending.end(ctx)
	defer s.setState(ctx, StateIdle)

	ctx, span := s.trace.Start(ctx, "Service.RefreshAccounts")
	defer span.End()

	s.setState(ctx, StateRefreshing)

	start := time.Now()
	raw := s.listAccounts(ctx)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	s.metrics.refreshes.Inc()

	if err := raw.Err(); err != nil {
		s.setState(ctx, StateFailed)
		s.metrics.failures.Inc()
		s.log.AccountsRefreshFailed(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing accounts")
	} else {
		s.setState(ctx, StateFiltering)
	}

	st := &cacheState{
		raw:     raw,
		visible: raw.Filter(s.currentPatterns()),
	}
	waiting := s.gate.commit(st)
	// the latch is already released, waiters must run whatever happens next
	defer callAll(ctx, s.log.TaskPanicked, waiting)

	span.SetAttributes(
		attribute.Int("accounts.total", raw.Len()),
		attribute.Int("accounts.visible", st.visible.Len()),
	)
	s.log.AccountsCommitted(ctx, st.visible.Len(), raw.Len(), waiting != nil)

	s.observers.notify(ctx, s.log.TaskPanicked)
}

func (s *Service) listAccounts(ctx context.Context) entities.Snapshot {
	accounts, err := s.lister.ListAccounts(ctx)
	if err != nil {
		return entities.NewFailedSnapshot(asDelegateError(err))
	}

	snapshot, err := entities.NewSnapshot(accounts)
	if err != nil {
		return entities.NewFailedSnapshot(asDelegateError(err))
	}

	return snapshot
}

func asDelegateError(err error) error {
	if target := new(ports.DelegateError); errors.As(err, &target) {
		return err
	}

	return ports.ErrDelegate("list accounts", err)
}

func (s *Service) refreshRestrictions(ctx context.Context) {
	defer s.pending.end(ctx)
	defer s.setState(ctx, StateIdle)

	ctx, span := s.trace.Start(ctx, "Service.RefreshRestrictions")
	defer span.End()

	s.setState(ctx, StateRefreshing)

	patterns, err := s.restrictions.RestrictionPatterns(ctx)
	if err != nil {
		s.setState(ctx, StateFailed)
		s.metrics.restrictionErrs.Inc()
		s.log.RestrictionsRefreshFailed(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "reading restriction patterns")

		return
	}

	s.setState(ctx, StateFiltering)
	s.patterns.Store(&patterns)

	// Not populated yet: the pending account refresh filters with the new
	// patterns on its own.
	st := s.gate.load()
	if st == nil {
		s.log.RestrictionsCommitted(ctx, patterns.Patterns(), false)
		return
	}

	visible := st.raw.Filter(patterns)
	changed := !visible.Equal(st.visible)
	s.log.RestrictionsCommitted(ctx, patterns.Patterns(), changed)
	if !changed {
		return
	}

	s.gate.commit(&cacheState{raw: st.raw, visible: visible})
	s.observers.notify(ctx, s.log.TaskPanicked)
}
