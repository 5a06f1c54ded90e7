// Package indexer builds immutable search indexes from a document directory.
//
// A build never touches a previously returned Index, so callers can keep
// serving searches from the old generation until the new one is ready.
package indexer
