// Package subscription models subscription history and plan quotas, and
// enforces both through the Guard used by the tenant pipeline.
//
// A tenant may have many subscription rows historically; exactly one is "the
// active subscription", the most recently started row whose status is
// active. Quota checks read the plan of that row. Admission checks (Verify)
// look at the latest row of any status so a suspended account is reported as
// suspended, not merely expired. Guards never cache either resolution: every
// check goes back to the repository so plan changes take effect immediately.
//
//	guard := subscription.NewGuard(repo)
//
//	// request admission
//	if err := guard.Verify(ctx, tenantID); err != nil { ... }
//
//	// before creating a resource
//	err := guard.CheckLimit(ctx, tenantID, "max_vehicles", currentCount)
//	var limitErr *subscription.LimitExceededError
//	if errors.As(err, &limitErr) {
//		// limitErr.Key names the exhausted quota
//	}
//
// Quotas are fail-open: a plan that does not mention a key places no limit
// on it. Subscription validity is date-granular; a subscription ending today
// is still valid, one that ended yesterday is expired.
package subscription
