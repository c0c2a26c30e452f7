package bare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorityRecord_HasIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record *AuthorityRecord
		ns     Namespace
		value  string
		want   bool
	}{
		{
			name:   "nil record",
			record: nil,
			ns:     NamespaceFeide,
			value:  "a@b.no",
			want:   false,
		},
		{
			name:   "empty identifiers map",
			record: &AuthorityRecord{Identifiers: map[string][]string{}},
			ns:     NamespaceFeide,
			value:  "a@b.no",
			want:   false,
		},
		{
			name:   "namespace absent",
			record: &AuthorityRecord{Identifiers: map[string][]string{"orcid": {"0000-0001"}}},
			ns:     NamespaceFeide,
			value:  "0000-0001",
			want:   false,
		},
		{
			name:   "value absent in namespace",
			record: &AuthorityRecord{Identifiers: map[string][]string{"feide": {"x@b.no"}}},
			ns:     NamespaceFeide,
			value:  "a@b.no",
			want:   false,
		},
		{
			name:   "exact pair present",
			record: &AuthorityRecord{Identifiers: map[string][]string{"feide": {"x@b.no", "a@b.no"}}},
			ns:     NamespaceFeide,
			value:  "a@b.no",
			want:   true,
		},
		{
			name:   "value match is case sensitive",
			record: &AuthorityRecord{Identifiers: map[string][]string{"feide": {"A@B.NO"}}},
			ns:     NamespaceFeide,
			value:  "a@b.no",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.record.HasIdentifier(tt.ns, tt.value))
		})
	}
}

func TestAuthorityRecord_SubfieldValue(t *testing.T) {
	t.Parallel()

	record := &AuthorityRecord{
		MarcData: []MarcField{
			{Tag: "024", Subfields: []MarcSubfield{{Subcode: "a", Value: "not a name"}}},
			{
				Tag:  TagPersonalName,
				Ind1: "1",
				Ind2: " ",
				Subfields: []MarcSubfield{
					{Subcode: SubcodeName, Value: "Moser, May-Britt"},
					{Subcode: SubcodeDates, Value: "1963-"},
				},
			},
			{Tag: TagPersonalName, Subfields: []MarcSubfield{{Subcode: SubcodeName, Value: "Second, Heading"}}},
		},
	}

	assert.Equal(t, "Moser, May-Britt", record.SubfieldValue(TagPersonalName, SubcodeName))
	assert.Equal(t, "1963-", record.SubfieldValue(TagPersonalName, SubcodeDates))
	assert.Equal(t, "", record.SubfieldValue(TagPersonalName, "q"))
	assert.Equal(t, "", record.SubfieldValue("400", SubcodeName))

	var nilRecord *AuthorityRecord
	assert.Equal(t, "", nilRecord.SubfieldValue(TagPersonalName, SubcodeName))
}

func TestAuthorityRecord_IdentifierValues(t *testing.T) {
	t.Parallel()

	record := &AuthorityRecord{
		Identifiers: map[string][]string{
			"feide": {"a@b.no", "c@d.no", "a@b.no"},
		},
	}

	assert.Equal(t, []string{"a@b.no", "c@d.no"}, record.IdentifierValues(NamespaceFeide))
	assert.Empty(t, record.IdentifierValues(NamespaceHandle))
	assert.Nil(t, (&AuthorityRecord{}).IdentifierValues(NamespaceFeide))
}
