package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON wraps gorm.io/datatypes.JSON so the column type can be mapped per
// database driver. SQL Server has no 'json' data type.
type JSON struct {
	datatypes.JSON
}

// Value promotes the embedded JSON's Value method
func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method
func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType selects the correct column type for each database driver.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}

// encodeJSON marshals v into a JSON column value. All values stored through
// this helper are plain maps and slices, so marshaling cannot fail; an
// unexpected failure stores an empty column rather than panicking.
func encodeJSON(v interface{}) JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return JSON{}
	}
	return JSON{datatypes.JSON(data)}
}

// decodeJSON unmarshals a JSON column into out, leaving out untouched when
// the column is empty or unreadable (lenient read).
func decodeJSON(j JSON, out interface{}) {
	if len(j.JSON) == 0 {
		return
	}
	_ = json.Unmarshal(j.JSON, out)
}
