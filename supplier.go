// Package supplier builds structured company profiles from company websites.
// It renders a seed page, collects a bounded set of its outbound links,
// fetches and cleans those pages concurrently, merges the text into a
// bounded corpus and asks a completion service to extract a profile.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, gemini/).
package supplier
