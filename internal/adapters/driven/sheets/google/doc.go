// Package google implements the spreadsheet ports against the Google
// Sheets and Drive APIs.
//
// Drive is used once per initialization to resolve a spreadsheet title
// to its document ID; Sheets carries everything else (worksheet
// listing, creation, deletion, reads, and appends). Authentication is
// a service-account key file, validated locally before any network
// call. All API calls pass through a shared token-bucket rate limiter,
// and appends are followed by a fixed pause to respect write quotas.
package google
