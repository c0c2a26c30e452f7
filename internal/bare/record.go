// Package bare provides the record model and client protocol for the Bare authority registry.
package bare

import (
	"slices"
)

// Namespace is the registry-internal name of an identifier category
type Namespace string

const (
	// NamespaceFeide holds Feide user identifiers
	NamespaceFeide Namespace = "feide"

	// NamespaceOrcid holds ORCID identifiers
	NamespaceOrcid Namespace = "orcid"

	// NamespaceOrgUnitID holds organisation unit identifiers
	NamespaceOrgUnitID Namespace = "orgunitid"

	// NamespaceHandle holds handle identifiers. It is only ever read, never written.
	NamespaceHandle Namespace = "handle"
)

const (
	// TagPersonalName is the MARC21 tag carrying the personal name heading
	TagPersonalName = "100"

	// SubcodeName is the subfield holding the inverted personal name
	SubcodeName = "a"

	// SubcodeDates is the subfield holding birth and death dates
	SubcodeDates = "d"

	// AuthorityTypePerson is the authority type assigned to new person records
	AuthorityTypePerson = "PERSON"

	// InitialStatus is the cataloguing status given to records created through this service
	InitialStatus = "kat3"
)

// AuthorityRecord is an authority record as stored by the registry
type AuthorityRecord struct {
	SystemControlNumber string              `json:"systemControlNumber,omitempty"`
	AuthorityType       string              `json:"authorityType,omitempty"`
	Status              string              `json:"status,omitempty"`
	MarcData            []MarcField         `json:"marcdata"`
	Identifiers         map[string][]string `json:"identifiersMap,omitempty"`
}

// MarcField is a single tagged field of a record
type MarcField struct {
	Tag       string         `json:"tag"`
	Ind1      string         `json:"ind1"`
	Ind2      string         `json:"ind2"`
	Subfields []MarcSubfield `json:"subfields"`
}

// MarcSubfield is a coded value inside a tagged field
type MarcSubfield struct {
	Subcode string `json:"subcode"`
	Value   string `json:"value"`
}

// IdentifierChange is a single (namespace, value) pair submitted to the registry
type IdentifierChange struct {
	Namespace Namespace
	Value     string
}

// SearchResult is the body returned by the registry query function
type SearchResult struct {
	NumFound int                `json:"numFound"`
	Results  []*AuthorityRecord `json:"results"`
}

// Field returns the first field with the given tag
func (r *AuthorityRecord) Field(tag string) (MarcField, bool) {
	if r == nil {
		return MarcField{}, false
	}
	for _, field := range r.MarcData {
		if field.Tag == tag {
			return field, true
		}
	}
	return MarcField{}, false
}

// SubfieldValue returns the value of the first subfield with the given code, or an
// empty string when either the field or the subfield is absent.
func (r *AuthorityRecord) SubfieldValue(tag, subcode string) string {
	field, ok := r.Field(tag)
	if !ok {
		return ""
	}
	for _, sub := range field.Subfields {
		if sub.Subcode == subcode {
			return sub.Value
		}
	}
	return ""
}

// IdentifierValues returns the distinct values stored under a namespace, in first-seen order.
func (r *AuthorityRecord) IdentifierValues(ns Namespace) []string {
	if r == nil || len(r.Identifiers) == 0 {
		return nil
	}
	values := r.Identifiers[string(ns)]
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(result, v) {
			result = append(result, v)
		}
	}
	return result
}

// HasIdentifier reports whether the exact (namespace, value) pair is present on the record
func (r *AuthorityRecord) HasIdentifier(ns Namespace, value string) bool {
	if r == nil || len(r.Identifiers) == 0 {
		return false
	}
	values, ok := r.Identifiers[string(ns)]
	if !ok {
		return false
	}
	return slices.Contains(values, value)
}
