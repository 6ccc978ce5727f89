package instance

import "os"

// GetID returns the process instance identifier used to tag log entries.
func GetID() string {
	for _, key := range []string{"LAVKA_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
