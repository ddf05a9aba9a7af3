// Package ingestion stores crawled beans with asynchronous embedding
// backfill. Production crawling lives outside this module; the pipeline here
// serves seeding tools and tests, and keeps the store's invariants (URL
// dedup, Updated stamping, vector backfill) in one place.
package ingestion
