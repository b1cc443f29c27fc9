package domain

import "time"

// DefaultExpiryThresholdDays is the "expiring soon" window for certificates.
const DefaultExpiryThresholdDays = 2

// Certificate is a client's non-withholding certificate (IVA or IIBB).
type Certificate struct {
	ID               int64
	ClientID         int64
	TipoCertificado  CertificateType
	Numero           string
	FechaVencimiento time.Time
	Alertado         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DaysUntilExpiration returns the number of calendar days until the expiry
// date; negative once expired.
func (c *Certificate) DaysUntilExpiration(now time.Time) int {
	exp := truncateToDay(c.FechaVencimiento)
	today := truncateToDay(now)
	return int(exp.Sub(today).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsExpired reports whether the certificate's expiry date has passed. A
// certificate expiring today is still current.
func (c *Certificate) IsExpired(now time.Time) bool {
	return c.DaysUntilExpiration(now) < 0
}

// IsExpiringSoon reports whether the certificate expires within the
// threshold: 0 <= days until expiration <= daysThreshold.
func (c *Certificate) IsExpiringSoon(now time.Time, daysThreshold int) bool {
	days := c.DaysUntilExpiration(now)
	return days >= 0 && days <= daysThreshold
}
