package settings

import "errors"

var (
	// ErrSettingsNotProvisioned means no active office row exists. Clock
	// events cannot be validated until one is provisioned.
	ErrSettingsNotProvisioned = errors.New("office settings have not been provisioned")

	// ErrActiveSettingsExists is returned when creating a second active row.
	ErrActiveSettingsExists = errors.New("an active office settings row already exists")
)
