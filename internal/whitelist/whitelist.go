// Package whitelist skips classification for trusted senders: the
// creator's own contacts, newsletters and tools should never burn a
// remote analysis call.
package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker matches senders against a configured list of addresses and
// domains
type Checker struct {
	domains   []string
	addresses []string
	logger    *zap.Logger
}

// NewChecker creates a whitelist checker. Entries containing "@" are
// treated as full addresses, anything else as a domain.
func NewChecker(entries []string, logger *zap.Logger) *Checker {
	c := &Checker{logger: logger}
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if strings.Contains(e, "@") {
			c.addresses = append(c.addresses, e)
		} else {
			c.domains = append(c.domains, e)
		}
	}

	if (len(c.domains) > 0 || len(c.addresses) > 0) && logger != nil {
		logger.Info("Initialized sender whitelist",
			zap.Strings("domains", c.domains),
			zap.Strings("addresses", c.addresses))
	}
	return c
}

// IsWhitelisted reports whether the sender matches a whitelisted address
// or domain. Senders may arrive as "Name <addr@domain>" or a bare
// address.
func (c *Checker) IsWhitelisted(sender string) bool {
	addr := extractAddress(sender)
	if addr == "" {
		return false
	}

	for _, a := range c.addresses {
		if a == addr {
			return true
		}
	}

	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return false
	}
	domain := addr[at+1:]
	for _, d := range c.domains {
		if d == domain {
			return true
		}
	}
	return false
}

func extractAddress(sender string) string {
	sender = strings.ToLower(strings.TrimSpace(sender))
	if i := strings.Index(sender, "<"); i >= 0 {
		sender = sender[i+1:]
		if j := strings.Index(sender, ">"); j >= 0 {
			sender = sender[:j]
		}
	}
	return strings.TrimSpace(sender)
}
