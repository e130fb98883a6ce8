package imagegen

import (
	"context"
	"time"

	"aigateway/internal/apierr"
)

// admission bounds concurrent provider calls. A nil *admission admits
// everything.
type admission struct {
	queueCh chan struct{}
	genCh   chan struct{}
	maxWait time.Duration
}

func newAdmission(maxInflight, maxQueue int, maxWait time.Duration) *admission {
	if maxInflight <= 0 {
		return nil
	}
	if maxQueue < 0 {
		maxQueue = 0
	}
	if maxWait <= 0 {
		maxWait = 30 * time.Second
	}
	return &admission{
		queueCh: make(chan struct{}, maxInflight+maxQueue),
		genCh:   make(chan struct{}, maxInflight),
		maxWait: maxWait,
	}
}

// begin reserves a queue slot and then an in-flight slot.
// Returns a release func to be deferred.
func (a *admission) begin(ctx context.Context) (func(), error) {
	if a == nil {
		return func() {}, nil
	}
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}

	timer := time.NewTimer(a.maxWait)
	defer timer.Stop()
	select {
	case a.queueCh <- struct{}{}:
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, errBusy()
	}

	acquired := false
	defer func() {
		if !acquired {
			<-a.queueCh
		}
	}()
	select {
	case a.genCh <- struct{}{}:
		acquired = true
		return func() { <-a.genCh; <-a.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, errBusy()
	}
}

func errBusy() error {
	return apierr.RateLimited("image generation is busy, please try again later")
}
