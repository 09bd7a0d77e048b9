// Package newsletter resolves subscription requests idempotently.
//
// A subscriber is identified by its normalized e-mail address. Resolve moves
// any identity to the single terminal state "subscribed" with the minimal
// mutation:
//
//   - absent: insert an active record (OutcomeCreated)
//   - present and active: no write (OutcomeAlreadyActive)
//   - present and inactive: reactivate and clear the deactivation time
//     (OutcomeReactivated)
//   - insert lost a race to a concurrent insert of the same identity
//     (OutcomeConcurrentInsert)
//
// Stores report a uniqueness conflict on insert as the AlreadyExists variant
// of InsertOutcome rather than as an error. The store's unique constraint is
// the only mutual exclusion between resolvers, including those running in
// other processes, so the resolver never locks and never retries.
//
// # Usage
//
//	store := newsletter.NewPostgresStore(pool)
//	resolver := newsletter.NewResolver(store,
//		newsletter.WithTimeout(5*time.Second),
//		newsletter.WithLogger(log),
//	)
//
//	res, err := resolver.Resolve(ctx, "  Jane@Example.com ")
//	if err != nil {
//		// errors.Is(err, newsletter.ErrStorage): retry later
//	}
//	// res.Email == "jane@example.com"
//
// # Stores
//
// MemoryStore is safe for concurrent use and serves tests and local runs.
// PostgresStore relies on a unique index and INSERT ... ON CONFLICT DO NOTHING;
// its schema ships in Migrations. MongoStore relies on a unique index created
// by EnsureIndexes.
package newsletter
