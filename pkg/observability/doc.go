/*
Package observability provides tools for monitoring the ostia learner.

It includes Prometheus metrics and structured-logging adapters, both exposed
as domain.LifecycleHooks so they can be combined and passed to a learner.
*/
package observability
