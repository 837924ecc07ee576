package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Service is a long-running task that can be executed as part of a Group.
type Service interface {
	Name() string

	// Run executes the service and blocks until the context gets cancelled
	// or an error occurs.
	Run(context.Context) error
}

// Group runs a set of services side by side.
type Group []Service

// Run executes all services in the group using the provided context. Calls
// to Run block until every service has returned. A failing service cancels
// the context passed to the others; all failures are reported in the
// returned error.
func (g Group) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		err error
	)
	wg.Add(len(g))
	for _, svc := range g {
		go func(svc Service) {
			defer wg.Done()
			if svcErr := svc.Run(runCtx); svcErr != nil {
				mu.Lock()
				err = multierror.Append(err, xerrors.Errorf("%s: %w", svc.Name(), svcErr))
				mu.Unlock()
				cancel()
			}
		}(svc)
	}
	wg.Wait()
	return err
}
