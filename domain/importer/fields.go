package importer

import "fmt"

// Field keys that validate as non-negative whole voter counts
var voterCountKeys = map[string]bool{
	"total_voters":       true,
	"male_voters":        true,
	"female_voters":      true,
	"transgender_voters": true,
}

// wardFields is the fixed target schema for ward imports
var wardFields = []TargetField{
	{Key: "ward_code", Label: "Ward Code", Required: true},
	{Key: "ward_name", Label: "Ward Name", Required: true},
	{Key: "constituency_code", Label: "Constituency Code", Required: true},
	{Key: "constituency_name", Label: "Constituency Name", Required: true},
	{Key: "district", Label: "District", Required: false},
	{Key: "state", Label: "State", Required: false},
	{Key: "total_voters", Label: "Total Voters", Required: false},
}

// boothFields is the fixed target schema for polling booth imports
var boothFields = []TargetField{
	{Key: "booth_number", Label: "Booth Number", Required: true},
	{Key: "booth_name", Label: "Booth Name", Required: true},
	{Key: "ward_code", Label: "Ward Code", Required: true},
	{Key: "ward_name", Label: "Ward Name", Required: false},
	{Key: "constituency_code", Label: "Constituency Code", Required: false},
	{Key: "address", Label: "Address", Required: false},
	{Key: "latitude", Label: "Latitude", Required: false},
	{Key: "longitude", Label: "Longitude", Required: false},
	{Key: "total_voters", Label: "Total Voters", Required: false},
	{Key: "male_voters", Label: "Male Voters", Required: false},
	{Key: "female_voters", Label: "Female Voters", Required: false},
	{Key: "transgender_voters", Label: "Transgender Voters", Required: false},
}

// constituencyFields is the fixed target schema for constituency imports
var constituencyFields = []TargetField{
	{Key: "constituency_code", Label: "Constituency Code", Required: true},
	{Key: "constituency_name", Label: "Constituency Name", Required: true},
	{Key: "constituency_type", Label: "Constituency Type", Required: false},
	{Key: "district", Label: "District", Required: false},
	{Key: "state", Label: "State", Required: false},
	{Key: "total_voters", Label: "Total Voters", Required: false},
}

// FieldsFor returns the target schema for an import kind.
// The returned slice is a copy so callers cannot mutate the schema.
func FieldsFor(kind ImportKind) ([]TargetField, error) {
	var src []TargetField
	switch kind {
	case KindWards:
		src = wardFields
	case KindBooths:
		src = boothFields
	case KindConstituencies:
		src = constituencyFields
	default:
		return nil, fmt.Errorf("unknown import kind: %q", kind)
	}

	fields := make([]TargetField, len(src))
	copy(fields, src)
	return fields, nil
}

// IsVoterCountKey reports whether a target key carries a voter count
func IsVoterCountKey(key string) bool {
	return voterCountKeys[key]
}
