// Package authority holds the domain view of authority records and the conversion to and
// from the registry record model.
package authority

import (
	"errors"
	"fmt"

	"github.com/sikt-no/authority-registry-api/internal/bare"
)

// ErrInvalidQualifier is returned for identifier qualifiers outside the accepted set
var ErrInvalidQualifier = errors.New("invalid qualifier")

// Qualifier is the identifier category name accepted from callers
type Qualifier string

const (
	// QualifierFeideID identifies Feide user ids
	QualifierFeideID Qualifier = "feideid"

	// QualifierOrcid identifies ORCID ids
	QualifierOrcid Qualifier = "orcid"

	// QualifierOrgUnitID identifies organisation unit ids
	QualifierOrgUnitID Qualifier = "orgunitid"
)

// qualifierNamespaces is the closed set of writable qualifiers. handle is readable only and
// therefore absent.
var qualifierNamespaces = map[Qualifier]bare.Namespace{
	QualifierFeideID:   bare.NamespaceFeide,
	QualifierOrcid:     bare.NamespaceOrcid,
	QualifierOrgUnitID: bare.NamespaceOrgUnitID,
}

// Qualifiers returns the accepted qualifiers in a stable order
func Qualifiers() []Qualifier {
	return []Qualifier{QualifierFeideID, QualifierOrcid, QualifierOrgUnitID}
}

// ParseQualifier validates raw against the accepted qualifiers. Matching is exact, so case
// variants and internal namespace spellings such as "feide" are rejected.
func ParseQualifier(raw string) (Qualifier, error) {
	q := Qualifier(raw)
	if _, ok := qualifierNamespaces[q]; !ok {
		return "", fmt.Errorf("%w: %q (expected one of %v)", ErrInvalidQualifier, raw, Qualifiers())
	}
	return q, nil
}

// Namespace returns the registry namespace the qualifier is stored under
func (q Qualifier) Namespace() bare.Namespace {
	return qualifierNamespaces[q]
}

// String returns the qualifier as accepted from callers
func (q Qualifier) String() string {
	return string(q)
}
