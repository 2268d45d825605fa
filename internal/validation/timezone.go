package validation

import (
	"context"
	"strings"

	"github.com/leadgate/leadgate/internal/leads"
)

// russianTimezones maps IANA identifiers covering Russian territory to the
// country code RU. Closed set; anything outside it maps to no country.
var russianTimezones = map[string]struct{}{
	"Europe/Kaliningrad":  {},
	"Europe/Moscow":       {},
	"Europe/Simferopol":   {},
	"Europe/Volgograd":    {},
	"Europe/Kirov":        {},
	"Europe/Astrakhan":    {},
	"Europe/Saratov":      {},
	"Europe/Ulyanovsk":    {},
	"Europe/Samara":       {},
	"Asia/Yekaterinburg":  {},
	"Asia/Omsk":           {},
	"Asia/Novosibirsk":    {},
	"Asia/Barnaul":        {},
	"Asia/Tomsk":          {},
	"Asia/Novokuznetsk":   {},
	"Asia/Krasnoyarsk":    {},
	"Asia/Irkutsk":        {},
	"Asia/Chita":          {},
	"Asia/Yakutsk":        {},
	"Asia/Khandyga":       {},
	"Asia/Vladivostok":    {},
	"Asia/Ust-Nera":       {},
	"Asia/Magadan":        {},
	"Asia/Sakhalin":       {},
	"Asia/Srednekolymsk":  {},
	"Asia/Kamchatka":      {},
	"Asia/Anadyr":         {},
}

// moscowTimezone is the identifier expected for Moscow-area visitors.
const moscowTimezone = "Europe/Moscow"

// TimezoneCheck cross-checks the browser-reported timezone against
// IP-derived geography. Every outcome is advisory: the signal is too noisy
// to hard-block on, so mismatches surface as warnings for manual review.
type TimezoneCheck struct{}

func (c *TimezoneCheck) Name() string { return "timezone" }

func (c *TimezoneCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	tz := strings.TrimSpace(sub.BrowserTimezone)
	if tz == "" {
		return Warn(WarnTimezoneNotProvided)
	}

	country := strings.ToUpper(strings.TrimSpace(sub.GeoCountry))
	_, isRussianTZ := russianTimezones[tz]

	if country != "" {
		tzCountry := ""
		if isRussianTZ {
			tzCountry = "RU"
		}
		if tzCountry != "" && tzCountry != country {
			return Warn("timezone_mismatch:" + tz + "_vs_" + country)
		}
		if country == "RU" && !isRussianTZ {
			return Warn("non_russian_timezone:" + tz)
		}
	}

	if strings.Contains(strings.ToLower(sub.GeoCity), "moscow") &&
		tz != moscowTimezone &&
		strings.HasPrefix(tz, "Asia/") && !isRussianTZ {
		return Warn("suspicious_timezone_for_moscow:" + tz)
	}

	return Pass()
}
