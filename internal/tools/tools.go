// Package tools implements the assistant's capabilities: three read-only
// public-API lookups (weather, SpaceX launches, country facts) and the two
// agenda operations backed by the schedule store.
//
// Handlers speak Portuguese to the user and never surface transport
// failures as errors: a failed API call degrades to an apologetic result
// string so the turn always reaches synthesis.
package tools

import (
	"net/http"
	"time"
)

const defaultHTTPTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// stringArg extracts a string argument by key, returning "" when the key
// is absent or not a string. Argument payloads come from the LLM and are
// loosely typed.
func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	v, ok := args[key].(string)
	if !ok {
		return ""
	}
	return v
}
