// Package pmst extracts structured records from Protected Matters Search
// Tool (PMST) reports: the query geometry and buffer behind a report, its
// creation date, its outbound links, and the registry entities those links
// point to, classified by conservation status.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/).
package pmst
