package database

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          0,
		description: "Settings",
		query: `
			CREATE TABLE setting (
			    name TEXT PRIMARY KEY,
			    value TEXT,
			    modified_timestamp DATETIME
			);
		`,
	},
	{
		id:          1,
		description: "Status",
		query: `
			CREATE TABLE status (
			    key TEXT PRIMARY KEY,
			    timestamp DATETIME
			);
		`,
	},
}
