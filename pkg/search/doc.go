// Package search finds candidate image URLs for a word.
//
// Client speaks DuckDuckGo's image search: it first loads the results page to
// obtain a vqd token, then pages through the i.js JSON endpoint. The
// CandidateProvider wraps any ImageSearcher and absorbs its failures, so a
// broken search looks like a search with no results plus an attached error.
package search
