// Package docaccess answers "may this email act on this document, and in
// what role?". The mapping is static configuration, read-only at runtime;
// cmd/seedaccess mirrors it into Postgres for systems that read it remotely.
package docaccess

import (
	"propale/pkg/email"
)

// Role is what a party may do with a document.
type Role string

const (
	// RoleClient signs the document as the client party.
	RoleClient Role = "client"
	// RoleIssuer signs as the issuing company.
	RoleIssuer Role = "issuer"
)

// Document identifiers for the three signable documents.
const (
	DocContratMOE   = "contrat-moe"
	DocDevisTravaux = "devis-travaux"
	DocAvenant1     = "avenant-1"
)

// Entry describes one document's parties, in the shape the provisioning
// store persists: one client, one issuer, one display name.
type Entry struct {
	DocumentID   string
	DocumentName string
	ClientEmail  string
	IssuerEmail  string
}

// Entries lists the static access configuration. Email keys are matched
// case-insensitively; document IDs are exact.
func Entries() []Entry {
	return []Entry{
		{
			DocumentID:   DocContratMOE,
			DocumentName: "Contrat de maîtrise d'œuvre",
			ClientEmail:  "contact@sci-les-tilleuls.fr",
			IssuerEmail:  "direction@progineers.fr",
		},
		{
			DocumentID:   DocDevisTravaux,
			DocumentName: "Devis détaillé des travaux",
			ClientEmail:  "contact@sci-les-tilleuls.fr",
			IssuerEmail:  "direction@progineers.fr",
		},
		{
			DocumentID:   DocAvenant1,
			DocumentName: "Avenant n°1 au contrat de maîtrise d'œuvre",
			ClientEmail:  "gerance@sci-les-tilleuls.fr",
			IssuerEmail:  "direction@progineers.fr",
		},
	}
}

// index is built once from Entries: documentID -> normalized email -> role.
var index = func() map[string]map[string]Role {
	m := make(map[string]map[string]Role)
	for _, e := range Entries() {
		m[e.DocumentID] = map[string]Role{
			email.Normalize(e.ClientEmail): RoleClient,
			email.Normalize(e.IssuerEmail): RoleIssuer,
		}
	}
	return m
}()

// RoleFor returns the role the email holds on the document. The boolean is
// false for unknown documents and unknown emails alike; no error, no
// distinction a caller could leak to an enumerating client.
func RoleFor(addr, documentID string) (Role, bool) {
	emails, ok := index[documentID]
	if !ok {
		return "", false
	}
	role, ok := emails[email.Normalize(addr)]
	return role, ok
}

// IsAuthorized reports whether the email may act on the document in any role.
func IsAuthorized(addr, documentID string) bool {
	_, ok := RoleFor(addr, documentID)
	return ok
}

// DocumentName returns the display name for a known document ID.
func DocumentName(documentID string) (string, bool) {
	for _, e := range Entries() {
		if e.DocumentID == documentID {
			return e.DocumentName, true
		}
	}
	return "", false
}
