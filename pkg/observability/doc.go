/*
Package observability exposes script statistics and workspace activity as
Prometheus metrics.

StatsCollector reads the saved Stats snapshot of every script in a
ports.ScriptStore on each scrape, so registering it never caches stale
counts. Operations counts workspace calls by operation and outcome.
*/
package observability
