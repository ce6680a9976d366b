package domain

// LocalizedString maps locale tags to display text.
type LocalizedString map[string]string

// Get returns the value for the given locale, falling back to any entry.
func (l LocalizedString) Get(locale string) string {
	if v, ok := l[locale]; ok {
		return v
	}
	for _, v := range l {
		return v
	}
	return ""
}

// Money is a cent-precision amount as reported by the platform.
type Money struct {
	Type           string `json:"type,omitempty"`
	CurrencyCode   string `json:"currencyCode"`
	CentAmount     int64  `json:"centAmount"`
	FractionDigits int    `json:"fractionDigits,omitempty"`
}
