// Package linkcrawl provides a web link crawler. Starting from a seed URL it
// fetches pages, extracts hyperlinks and records every visited URL in
// persistent storage, optionally staying on the seed's domain.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package linkcrawl
