package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sikt-no/authority-registry-api/internal/bare"
)

func TestParseQualifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		raw           string
		want          Qualifier
		wantNamespace bare.Namespace
		wantErr       bool
	}{
		{name: "feideid", raw: "feideid", want: QualifierFeideID, wantNamespace: bare.NamespaceFeide},
		{name: "orcid", raw: "orcid", want: QualifierOrcid, wantNamespace: bare.NamespaceOrcid},
		{name: "orgunitid", raw: "orgunitid", want: QualifierOrgUnitID, wantNamespace: bare.NamespaceOrgUnitID},
		{name: "empty", raw: "", wantErr: true},
		{name: "upper case", raw: "ORCID", wantErr: true},
		{name: "mixed case", raw: "FeideId", wantErr: true},
		{name: "internal feide spelling", raw: "feide", wantErr: true},
		{name: "read only handle", raw: "handle", wantErr: true},
		{name: "surrounding whitespace", raw: " orcid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseQualifier(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidQualifier)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantNamespace, got.Namespace())
		})
	}
}

func TestQualifierNamespace_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		q := rapid.SampledFrom(Qualifiers()).Draw(rt, "qualifier")

		ns := q.Namespace()
		require.NotEmpty(rt, ns)

		if q == QualifierFeideID {
			require.Equal(rt, bare.NamespaceFeide, ns)
		} else {
			require.Equal(rt, string(q), string(ns))
		}
		require.NotEqual(rt, bare.NamespaceHandle, ns)
	})
}

func TestQualifierNamespace_FeideIsUnique(t *testing.T) {
	t.Parallel()

	seen := map[bare.Namespace]Qualifier{}
	for _, q := range Qualifiers() {
		ns := q.Namespace()
		_, dup := seen[ns]
		assert.False(t, dup, "namespace %s mapped twice", ns)
		seen[ns] = q
	}
	assert.Equal(t, QualifierFeideID, seen[bare.NamespaceFeide])
}

func TestParseQualifier_RejectsEverythingElse(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.String().Draw(rt, "raw")
		if _, ok := qualifierNamespaces[Qualifier(raw)]; ok {
			rt.Skip("valid qualifier")
		}

		_, err := ParseQualifier(raw)
		require.ErrorIs(rt, err, ErrInvalidQualifier)
	})
}
