package db

// Backend is the configuration and validation strategy of one database
// variant. The set is closed: *SQLiteBackend and *MySQLBackend.
type Backend interface {
	// Kind is a short label for logs and metrics ("sqlite" or "mysql").
	Kind() string
	// Driver is the driver name understood by New.
	Driver() string
	// Name is the logical name the connection is registered under.
	Name() string
	// DSN is the data source name for the current configuration.
	DSN() string
	// Validate returns an error wrapping ErrInvalidConfig when the
	// configuration cannot be used.
	Validate() error
	// Repair asks p for corrected values of the invalid fields. It reports
	// whether the user supplied a correction.
	Repair(p Prompter) bool

	sealed()
}

// Prompter asks the user for corrected configuration values. Each method
// reports whether the user confirmed the input.
type Prompter interface {
	PromptText(label, current string) (string, bool)
	PromptInt(label string, current, min, max, step int) (int, bool)
}

// Notifier shows blocking error messages to the user.
type Notifier interface {
	Critical(msg, detail string)
}

// Decline is a Prompter that never supplies a correction.
type Decline struct{}

func (Decline) PromptText(_, current string) (string, bool) { return current, false }

func (Decline) PromptInt(_ string, current, _, _, _ int) (int, bool) { return current, false }

// Discard is a Notifier that drops every message.
type Discard struct{}

func (Discard) Critical(string, string) {}
