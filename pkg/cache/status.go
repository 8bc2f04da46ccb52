package cache

import (
	"fmt"
	"strings"
)

// Status tells how a cached lookup ended.
type Status int

const (
	// StatusResolved means the service returned a value.
	StatusResolved Status = iota
	// StatusNotFound means the service has no record for the key.
	// Such keys are never queried again.
	StatusNotFound
	// StatusError means the lookup failed with a transport or service
	// error. Such keys are re-queried only if retries are enabled.
	StatusError
)

var statusNames = map[Status]string{
	StatusResolved: "resolved",
	StatusNotFound: "not_found",
	StatusError:    "error",
}

// String returns the text form stored by cache backends.
func (s Status) String() string {
	if res, ok := statusNames[s]; ok {
		return res
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts the text form back to Status.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range statusNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown cache status '%s'", s)
}
