package linkcrawl

import (
	"net/url"
	"strings"
)

// IsAccepted reports whether address may be crawled: the scheme must be
// exactly https and the host must contain at least one dot. Plain http is
// rejected. The result depends only on address.
func IsAccepted(address string) bool {
	u, err := url.Parse(address)
	if err != nil {
		return false
	}
	if u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return host != "" && strings.Contains(host, ".")
}

// SameDomain reports whether a and b have byte-equal host components.
// Subdomains are different domains and schemes and ports are ignored.
// Unparseable addresses are never on the same domain as anything.
func SameDomain(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Hostname() == ub.Hostname()
}
