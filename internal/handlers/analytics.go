package handlers

import "os"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

// LoadAnalyticsFromEnv builds Analytics from environment variables.
func LoadAnalyticsFromEnv() Analytics {
	return Analytics{
		GA4MeasurementID: os.Getenv("COUNCIL_WEB_GA_MEASUREMENT_ID"),
		Debug:            os.Getenv("COUNCIL_WEB_ANALYTICS_DEBUG") != "",
	}
}
