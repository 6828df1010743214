// Package psqlbuilder wraps squirrel statement builders with the placeholder format of the driver.
package psqlbuilder

import "github.com/Masterminds/squirrel"

// Supported database/sql driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var postgres = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ForDriver returns a statement builder using the placeholders the driver expects.
// Unknown drivers get the PostgreSQL format.
func ForDriver(driver string) squirrel.StatementBuilderType {
	if driver == DriverSQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return postgres
}
