// Package utils provides common utility functions for the dropsync application.
// It includes lenient string-to-number coercion helpers for the loosely typed
// values found in supplier feeds and remote API payloads.
package utils
