package authority

// View is the flat representation of an authority returned to callers.
// Identifier sets are sorted and free of duplicates, and are never nil.
type View struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	SystemControlNumber string   `json:"systemControlNumber"`
	FeideIDs            []string `json:"feideids"`
	Orcids              []string `json:"orcids"`
	OrgUnitIDs          []string `json:"orgunitids"`
	BirthDate           string   `json:"birthDate"`
	Handles             []string `json:"handles"`
}
