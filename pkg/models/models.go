// Package models defines the JIRA REST entities exchanged with the API.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BaseProperties holds the fields every addressable JIRA resource carries.
type BaseProperties struct {
	// ID is the numeric resource id. JIRA sends it as a string.
	ID int64

	// Self is the REST URL of the resource
	Self string
}

// User represents a JIRA user as embedded in other resources.
type User struct {
	Self         string `json:"self,omitempty"`
	Name         string `json:"name,omitempty"`
	Key          string `json:"key,omitempty"`
	AccountID    string `json:"accountId,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active"`
	TimeZone     string `json:"timeZone,omitempty"`
}

// Visibility restricts who can see a resource, e.g. {Type: "role", Value: "Administrators"}.
type Visibility struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// parseID accepts an id sent either as a JSON string or a JSON number.
func parseID(raw json.RawMessage) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %s: %w", raw, err)
	}
	return id, nil
}

func formatID(id int64) json.RawMessage {
	return json.RawMessage(strconv.Quote(strconv.FormatInt(id, 10)))
}
