// Package fittrack is the admin backend for a fitness tracking service:
// admin session management (JWT cookies, Argon2id credentials), the user
// registry, and the user deletion cascade.
//
// Sessions:
//   - Auther verifies credentials against the admins table and mints
//     short-lived HS256 access tokens plus refresh tokens. Lookup and
//     password failures collapse into the same ErrInvalidCredentials so
//     the login endpoint cannot be used to probe for accounts.
//   - RouteAuthenticator moves tokens in and out of HTTP-only cookies and
//     builds the protection middleware for the admin surface.
//   - EnsureDefaultAdmin seeds a master admin when the table is empty so
//     a fresh deployment is reachable.
//
// User lifecycle:
//   - LifecycleCoordinator removes a user account together with its
//     exercises, plan templates, workout plans, body metrics, and meals.
//     Under CascadeBestEffort each dependent step runs regardless of
//     earlier failures and only the account row decides the outcome;
//     CascadeAtomic wraps the same steps in a single transaction and
//     rolls everything back on the first failure. Every step lands in
//     the DeletionOutcome either way.
package fittrack
