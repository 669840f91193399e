package types

// Standard table names for Store.GetTable.
const (
	EventTypesTable = "event_types"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	EventTypesTable,
}
