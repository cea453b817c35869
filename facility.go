package loggers

import (
	"sort"
)

// Facility is a syslog facility code, already shifted into the priority value
type Facility int

// Facilities as defined by RFC 5424 and <syslog.h>
const (
	FacilityKern     Facility = 0 << 3
	FacilityUser     Facility = 1 << 3
	FacilityMail     Facility = 2 << 3
	FacilityDaemon   Facility = 3 << 3
	FacilityAuth     Facility = 4 << 3
	FacilitySyslog   Facility = 5 << 3
	FacilityLpr      Facility = 6 << 3
	FacilityNews     Facility = 7 << 3
	FacilityUucp     Facility = 8 << 3
	FacilityCron     Facility = 9 << 3
	FacilityAuthpriv Facility = 10 << 3
	FacilityFtp      Facility = 11 << 3
	FacilityLocal0   Facility = 16 << 3
	FacilityLocal1   Facility = 17 << 3
	FacilityLocal2   Facility = 18 << 3
	FacilityLocal3   Facility = 19 << 3
	FacilityLocal4   Facility = 20 << 3
	FacilityLocal5   Facility = 21 << 3
	FacilityLocal6   Facility = 22 << 3
	FacilityLocal7   Facility = 23 << 3
)

var facilityNames = map[string]Facility{
	"kern":     FacilityKern,
	"user":     FacilityUser,
	"mail":     FacilityMail,
	"daemon":   FacilityDaemon,
	"auth":     FacilityAuth,
	"syslog":   FacilitySyslog,
	"lpr":      FacilityLpr,
	"news":     FacilityNews,
	"uucp":     FacilityUucp,
	"cron":     FacilityCron,
	"authpriv": FacilityAuthpriv,
	"ftp":      FacilityFtp,
	"local0":   FacilityLocal0,
	"local1":   FacilityLocal1,
	"local2":   FacilityLocal2,
	"local3":   FacilityLocal3,
	"local4":   FacilityLocal4,
	"local5":   FacilityLocal5,
	"local6":   FacilityLocal6,
	"local7":   FacilityLocal7,
}

// String returns the configuration name of the facility
func (f Facility) String() string {
	for name, v := range facilityNames {
		if v == f {
			return name
		}
	}
	return "unknown"
}

// ParseFacility converts a facility name to a Facility
func ParseFacility(s string) (Facility, error) {
	if f, ok := facilityNames[s]; ok {
		return f, nil
	}
	return FacilityUser, invalidField("facility", "unknown syslog facility %q, expected one of %v", s, FacilityNames())
}

// FacilityNames lists the accepted facility names in sorted order
func FacilityNames() []string {
	names := make([]string, 0, len(facilityNames))
	for name := range facilityNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Syslog priorities used by the drain
const (
	priorityCrit    = 2
	priorityErr     = 3
	priorityWarning = 4
	priorityInfo    = 6
	priorityDebug   = 7
)

// syslogPriority maps a severity to the syslog priority it is sent with
func syslogPriority(s Severity) int {
	switch s {
	case SeverityCritical:
		return priorityCrit
	case SeverityError:
		return priorityErr
	case SeverityWarning:
		return priorityWarning
	case SeverityDebug, SeverityTrace:
		return priorityDebug
	default:
		return priorityInfo
	}
}
