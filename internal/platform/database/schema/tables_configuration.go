package schema

// TablesConfigurationTable represents the 'tables.configuration' table
type TablesConfigurationTable struct {
	Table      string
	ID         string
	UserID     string
	Name       string
	TableClass string
	Columns    string
	OrderBy    string
	Limit      string
	CreatedAt  string
	UpdatedAt  string
}

// TablesConfiguration is the schema definition for tables.configuration
var TablesConfiguration = TablesConfigurationTable{
	Table:      "tables.configuration",
	ID:         "id",
	UserID:     "userid",
	Name:       "name",
	TableClass: "tableclass",
	Columns:    "columns",
	OrderBy:    "orderby",
	Limit:      `"limit"`,
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// All returns all standard column names in scan order
func (t TablesConfigurationTable) All() []string {
	return []string{
		t.ID, t.UserID, t.Name, t.TableClass, t.Columns, t.OrderBy, t.Limit, t.CreatedAt, t.UpdatedAt,
	}
}
