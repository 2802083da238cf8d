// models/service_type.go
package models

import "time"

// ServiceType describes a service offered by the shop.
type ServiceType struct {
	Name        string        `bson:"name" json:"name"`
	Duration    time.Duration `bson:"duration" json:"duration"` // estimated service time
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
}

// DefaultServiceDuration is assumed for service types the catalogue does
// not know about. main overrides it from DEFAULT_SERVICE_HOURS at startup.
var DefaultServiceDuration = 2 * time.Hour

var serviceCatalogue = map[string]time.Duration{
	"oil-change":        1 * time.Hour,
	"tire-rotation":     1 * time.Hour,
	"wheel-alignment":   1 * time.Hour,
	"brake-service":     2 * time.Hour,
	"engine-diagnostic": 2 * time.Hour,
	"battery-service":   1 * time.Hour,
	"full-service":      4 * time.Hour,
}

// ServiceDuration returns the estimated duration for a service type.
// Unknown types fall back to DefaultServiceDuration rather than failing.
func ServiceDuration(serviceType string) time.Duration {
	if d, ok := serviceCatalogue[serviceType]; ok {
		return d
	}
	return DefaultServiceDuration
}
