// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package socialcheck

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/aiide/starforge/pkg/registry"
	"github.com/aiide/starforge/pkg/site"
	"github.com/aiide/starforge/pkg/workers/taskqueue"
	"k8s.io/klog/v2"
)

// SocialCheck checks the social links of a site in separate goroutines
type SocialCheck interface {
	// CheckSocialLink schedules the check of a social link
	// returns true if the task was added for processing, false if it was skipped
	CheckSocialLink(link site.SocialLink) bool
}

// Worker checks social links pointing at repositories
type Worker struct {
	registry registry.Interface
}

type socialCheck struct {
	*Worker
	queue *taskqueue.Queue[site.SocialLink]
}

// NewWorker creates new Worker object
func NewWorker(registry registry.Interface) (*Worker, error) {
	if registry == nil || reflect.ValueOf(registry).IsNil() {
		return nil, errors.New("invalid argument: registry is nil")
	}
	return &Worker{registry}, nil
}

// New creates a SocialCheck and the controller of its queue
func New(workerCount int, failFast bool, wg *sync.WaitGroup, registry registry.Interface) (SocialCheck, taskqueue.QueueController, error) {
	worker, err := NewWorker(registry)
	if err != nil {
		return nil, nil, err
	}
	queue, err := taskqueue.New[site.SocialLink]("SocialCheck", workerCount, worker.Check, failFast, wg)
	if err != nil {
		return nil, nil, err
	}
	return &socialCheck{worker, queue}, queue, nil
}

func (s *socialCheck) CheckSocialLink(link site.SocialLink) bool {
	added := s.queue.AddTask(link)
	if !added {
		klog.Warningf("scheduling check of social link %s failed\n", link.Platform)
	}
	return added
}

// Check verifies that the repository a social link points at exists.
// Links not served by a repository host are skipped.
func (w *Worker) Check(ctx context.Context, link site.SocialLink) error {
	if !w.registry.Accept(link.URL) {
		klog.V(2).Infof("social link %s: %s is not a repository link, skipping check\n", link.Platform, link.URL)
		return nil
	}
	repository, err := w.registry.CheckRepository(ctx, link.URL)
	if err != nil {
		return fmt.Errorf("social link %s: %w", link.Platform, err)
	}
	klog.V(6).Infof("social link %s: repository %s found\n", link.Platform, repository.URL)
	return nil
}

// CheckAll checks the social links of a site and waits for the results
func CheckAll(ctx context.Context, social site.Social, workerCount int, registry registry.Interface) error {
	wg := &sync.WaitGroup{}
	checker, queue, err := New(workerCount, false, wg, registry)
	if err != nil {
		return err
	}
	queue.Start(ctx)
	defer queue.Stop()
	for _, link := range social {
		checker.CheckSocialLink(link)
	}
	wg.Wait()
	klog.V(2).Infof("%s tasks processed: %d\n", queue.Name(), queue.GetProcessedTasksCount())
	if err := ctx.Err(); err != nil {
		return errors.Join(fmt.Errorf("checking social links interrupted: %w", err), queue.GetErrorList().ErrorOrNil())
	}
	return queue.GetErrorList().ErrorOrNil()
}
