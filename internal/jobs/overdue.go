package jobs

import (
	"context"
	"fmt"
	"io"
	"time"

	"library-backend/internal/usecase/loan"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// OverdueLister is the slice of the loan usecase the sweep needs.
type OverdueLister interface {
	ListOverdue(ctx context.Context, now time.Time) ([]loan.LoanDTO, error)
}

// OverdueSweep periodically counts overdue loans and publishes the count.
type OverdueSweep struct {
	loans   OverdueLister
	publish func(int)
	log     logrus.FieldLogger
	now     func() time.Time
	timeout time.Duration
}

func NewOverdueSweep(loans OverdueLister, publish func(int), log logrus.FieldLogger) *OverdueSweep {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if publish == nil {
		publish = func(int) {}
	}
	return &OverdueSweep{
		loans:   loans,
		publish: publish,
		log:     log.WithField("job", "overdue_sweep"),
		now:     func() time.Time { return time.Now().UTC() },
		timeout: 30 * time.Second,
	}
}

// Run performs one sweep. A failed read leaves the last published value.
func (s *OverdueSweep) Run(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	overdue, err := s.loans.ListOverdue(ctx, s.now())
	if err != nil {
		s.log.WithError(err).Warn("overdue sweep failed")
		return 0, err
	}
	s.publish(len(overdue))
	s.log.WithField("overdue", len(overdue)).Info("overdue sweep done")
	return len(overdue), nil
}

// Schedule registers the sweep on a UTC cron and runs it once immediately.
// Stop the returned cron on shutdown.
func (s *OverdueSweep) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() { _, _ = s.Run(ctx) }); err != nil {
		return nil, fmt.Errorf("schedule overdue sweep %q: %w", spec, err)
	}
	_, _ = s.Run(ctx)
	c.Start()
	return c, nil
}
