// Package jobs provides scheduled background tasks for the order lifecycle
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. PaymentExpiryJob - Runs every minute to fail unpaid pending orders
// whose payment session has lapsed. It backs up the per-order expiry
// notifications from the payment provider.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireStalePaymentsHandler, sessionTTL, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; a failed job start
// aborts application startup.
package jobs
