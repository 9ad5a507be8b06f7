package linkcrawl

// HrefExtractor pulls raw href values out of an HTML document.
type HrefExtractor interface {
	// ExtractHrefs returns the href attribute of every anchor in the
	// document, in document order. Values are returned unresolved.
	// Malformed markup is tolerated and yields whatever anchors the
	// parser recovers.
	ExtractHrefs(html string) ([]string, error)
}
