package utils

import "github.com/google/uuid"

// GenerateCorrelationID creates the request id stamped on every outgoing
// API call so client and server logs can be matched up.
func GenerateCorrelationID() string {
	return uuid.New().String()
}

// GenerateInstanceID names this client instance on the push channel.
func GenerateInstanceID(app string) string {
	return app + "-" + uuid.New().String()[:8]
}
