package reconcile

// Config holds the default field layout for a reconciliation.
type Config struct {
	// Sheet is the target section reconciled when none is given.
	Sheet string `mapstructure:"sheet" default:"charm"`
	// Key is the field identifying a record.
	Key string `mapstructure:"key" default:"change id"`
	// Required lists the fields that must exist on both sides.
	Required []string `mapstructure:"required" default:"change id,priority,description"`
	// Optional lists the fields synced when the source carries them.
	Optional []string `mapstructure:"optional" default:"status"`
}

// FieldSpec returns the configured field layout.
func (c Config) FieldSpec() FieldSpec {
	return FieldSpec{
		Key:      c.Key,
		Required: c.Required,
		Optional: c.Optional,
	}
}
