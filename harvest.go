// Package harvest provides a browser-driven web harvesting tool.
// It explores listing pages (templated pagination, "next" and "load more"
// controls, infinite scroll) to discover links, downloads linked PDF
// documents, captures rendered pages as WARC records, estimates token
// volume for the downloaded corpus and packs outputs for distribution.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, goquery/).
package harvest
