// Package batch runs the image acquisition pass over a pairs file.
//
// For each item, in file order, the Runner:
//   - records the normalized output entry
//   - skips it if the image already exists (no delay follows a skip)
//   - otherwise asks the CandidateSource for URLs and tries them in order,
//     stopping at the first successful download
//   - waits on the Limiter before the next item
//
// When every item has been handled the full record set is saved, even when
// no image could be downloaded. The pass is single-threaded; a search or
// download failure never stops the batch, while a missing or malformed pairs
// file stops it before any work is done.
package batch
