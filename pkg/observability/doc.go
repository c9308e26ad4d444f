/*
Package observability turns engine lifecycle events into logs and Prometheus metrics.

Both are exposed as domain.LifecycleHooks so they compose with any other hook
through LifecycleHooks.Merge.
*/
package observability
