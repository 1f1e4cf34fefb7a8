// Package models defines the typed records persisted by the portal: one Go
// struct per entity instead of schema-as-data.
package models
