package model

// Alert is a public safety advisory
type Alert struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// DefaultAlerts is the embedded list used when neither the external source nor the cache has data.
func DefaultAlerts() []Alert {
	return []Alert{
		{Title: "Beware of Fake Job Offers", Date: "2025-08-20", Message: "Scammers sending fake job offers, verify before replying."},
		{Title: "Bank OTP Scam", Date: "2025-08-25", Message: "Never share your OTP or banking details."},
	}
}
