// Package loader wires self-contained features into the shared Fiber app.
//
// A feature is anything implementing the Feature interface: it names
// itself, reports whether configuration enables it, and registers its own
// routes when loaded. The Manager keeps the registry and loads enabled
// features in registration order, so a feature may rely on routes or
// middleware registered by an earlier one.
//
// Features such as 'auth', 'account', 'supplier' and 'sync' each construct
// their own services and handlers, which keeps them testable in isolation
// and makes disabling one a pure configuration change.
package loader
