package database

import "time"

type MigrationId int64

type Migration struct {
	Id MigrationId `db:"id"`
}

type TableExist int

const (
	TableNotExist TableExist = iota
	TableExists
)

type Setting struct {
	Name              string    `db:"name"`
	Value             string    `db:"value"`
	ModifiedTimestamp time.Time `db:"modified_timestamp"`
}

type Status struct {
	Key       StatusKey `db:"key"`
	Timestamp time.Time `db:"timestamp"`
}
