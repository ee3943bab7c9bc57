package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	src  Source
	opts Options
	now  func() time.Time
}

func NewService(src Source, opts Options) *Service {
	return &Service{src: src, opts: opts, now: time.Now}
}

// SetClock replaces the source of the default reference instant. Its
// location decides calendar boundaries.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Location is the zone calendar days are interpreted in.
func (s *Service) Location() *time.Location {
	return s.now().Location()
}

// Current computes the summary as of now.
func (s *Service) Current(ctx context.Context) (*Summary, error) {
	return s.AsOf(ctx, s.now())
}

// AsOf loads the three collections concurrently and computes the summary at
// ref.
func (s *Service) AsOf(ctx context.Context, ref time.Time) (*Summary, error) {
	var in Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if in.Patients, err = s.src.Patients(gctx); err != nil {
			return fmt.Errorf("load patients: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if in.Appointments, err = s.src.Appointments(gctx); err != nil {
			return fmt.Errorf("load appointments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if in.Consultations, err = s.src.Consultations(gctx); err != nil {
			return fmt.Errorf("load consultations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Compute(in, ref, s.opts), nil
}

// EndOfDay parses a YYYY-MM-DD day and returns its last instant in loc.
func EndOfDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: must be YYYY-MM-DD", day)
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}
