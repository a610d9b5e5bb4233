package models

// SchemaInfo records the persisted schema version (single row). Earlier
// versions of the app grew the schema by adding storage keys ad hoc; the
// version row makes migrations explicit instead.
type SchemaInfo struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}
