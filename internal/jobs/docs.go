// Package jobs provides scheduled background tasks for the order pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrphanRepublishJob - periodically republishes fulfillment envelopes for
// orders stuck in Submitted status, closing the gap between persisting an
// order and publishing its envelope.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(republishHandler, "*/1 * * * *", 5*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; the underlying
// orders stay in Submitted status until a sweep succeeds, so no work is lost.
package jobs
