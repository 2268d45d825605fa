package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadgate/leadgate/internal/leads"
)

// UTMCheck rejects submissions whose UTM content/placement matches a
// configured blacklist (exact or substring, case-insensitive). Typically
// used to cut off known junk teaser-network placements.
type UTMCheck struct {
	Enabled   bool
	Blacklist []string
}

func (c *UTMCheck) Name() string { return "utm" }

func (c *UTMCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	if !c.Enabled || sub.UTMContent == "" {
		return Pass()
	}

	content := strings.ToLower(strings.TrimSpace(sub.UTMContent))
	for _, entry := range c.Blacklist {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if content == entry || strings.Contains(content, entry) {
			return Reject(ReasonBlacklistedUTM, fmt.Sprintf("utm_content %q matched blacklist entry %q", sub.UTMContent, entry))
		}
	}
	return Pass()
}
