package authority

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/sikt-no/authority-registry-api/internal/bare"
)

// ErrInvalidName is returned when a display name cannot be used for a new record
var ErrInvalidName = errors.New("invalid name")

const (
	personalNameInd1 = "1"
	personalNameInd2 = " "
)

// Converter maps registry records to views
type Converter struct {
	base url.URL
}

// NewConverter creates a converter that builds resource ids under baseAddress.
// Query and fragment of the base address are ignored.
func NewConverter(baseAddress string) (*Converter, error) {
	u, err := url.Parse(strings.TrimSpace(baseAddress))
	if err != nil {
		return nil, fmt.Errorf("invalid base address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base address must be an absolute URL: %q", baseAddress)
	}

	return &Converter{
		base: url.URL{
			Scheme: u.Scheme,
			Host:   u.Host,
			Path:   strings.TrimSuffix(u.Path, "/"),
		},
	}, nil
}

// ToView converts a registry record. Missing fields and namespaces produce empty values.
func (c *Converter) ToView(record *bare.AuthorityRecord) View {
	scn := ""
	if record != nil {
		scn = record.SystemControlNumber
	}

	return View{
		ID:                  c.ResourceID(scn),
		Name:                record.SubfieldValue(bare.TagPersonalName, bare.SubcodeName),
		SystemControlNumber: scn,
		FeideIDs:            identifierSet(record, bare.NamespaceFeide),
		Orcids:              identifierSet(record, bare.NamespaceOrcid),
		OrgUnitIDs:          identifierSet(record, bare.NamespaceOrgUnitID),
		BirthDate:           record.SubfieldValue(bare.TagPersonalName, bare.SubcodeDates),
		Handles:             identifierSet(record, bare.NamespaceHandle),
	}
}

// ExtractMany converts search results, keeping their order
func (c *Converter) ExtractMany(records []*bare.AuthorityRecord) []View {
	views := make([]View, 0, len(records))
	for _, record := range records {
		views = append(views, c.ToView(record))
	}
	return views
}

// ResourceID returns the URI of the authority with the given system control number
func (c *Converter) ResourceID(scn string) string {
	u := c.base
	u.Path = u.Path + "/" + scn
	return u.String()
}

// FromDisplayName builds the draft record for a new person. name must be in inverted
// "Last, First" form.
func FromDisplayName(name string) (*bare.AuthorityRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if !strings.Contains(name, ",") {
		return nil, fmt.Errorf("%w: %q is not in inverted form (expected \"Last, First\")", ErrInvalidName, name)
	}

	return &bare.AuthorityRecord{
		AuthorityType: bare.AuthorityTypePerson,
		Status:        bare.InitialStatus,
		MarcData: []bare.MarcField{
			{
				Tag:  bare.TagPersonalName,
				Ind1: personalNameInd1,
				Ind2: personalNameInd2,
				Subfields: []bare.MarcSubfield{
					{Subcode: bare.SubcodeName, Value: name},
				},
			},
		},
	}, nil
}

func identifierSet(record *bare.AuthorityRecord, ns bare.Namespace) []string {
	values := slices.Clone(record.IdentifierValues(ns))
	if values == nil {
		return []string{}
	}
	slices.Sort(values)
	return slices.Compact(values)
}
