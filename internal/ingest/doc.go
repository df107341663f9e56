// Package ingest parses already-exported review artifacts: pull-request
// comment exports and Sonar-style linter reports. It never talks to a
// remote service; fetching is the caller's problem.
package ingest
