package idf

import "strings"

// VersionType is the type name of the record carrying the schema version.
const VersionType = "Version"

// Version returns the value of the first Version record, if any.
func Version(records []Record) (string, bool) {
	for _, rec := range records {
		if !strings.EqualFold(rec.Type, VersionType) {
			continue
		}
		for _, v := range rec.Values {
			if v != "" {
				return v, true
			}
		}
		return "", false
	}
	return "", false
}
