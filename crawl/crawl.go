// Package crawl implements the traversal engine: a Frontier that owns the
// visited set and the pending stack, and a Page that fetches one address
// and reports the links it accepts.
package crawl
