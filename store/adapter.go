/*
Package store defines the persistence adapter contract.

PURPOSE:
  The core treats persistence as an opaque key-value document: each named
  field (attendance map, quotas, display preferences) is loaded once at
  startup and written back after mutation. The adapter offers no
  transactional guarantees beyond last-write-wins per field; the in-memory
  state remains the source of truth for the session, and a failed save
  simply leaves the previous persisted value intact.

IMPLEMENTATIONS:
  - store/sqlite: production adapter, one row per field in a document table
  - store/memory: in-memory adapter for tests and development
*/
package store

// Document field names shared by the adapters, the ledger, and backup.
const (
	FieldAttendance = "attendance"
	FieldQuotas     = "quotas"
	FieldTimings    = "shiftTimings"
	FieldColors     = "shiftColors"
	FieldEnabled    = "enabledShifts"
	FieldView       = "defaultViewMode"
	FieldDarkMode   = "isDarkMode"
)

// Adapter persists named document fields as JSON.
type Adapter interface {
	// Load reads the field into out. It returns (false, nil) when the field
	// has never been written. A malformed stored value is an error; callers
	// fall back to defaults for that field rather than failing startup.
	Load(field string, out any) (bool, error)

	// Save replaces the field wholesale. Last write wins.
	Save(field string, v any) error

	// Close releases the underlying resources.
	Close() error
}
