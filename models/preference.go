package models

// Theme values the frontend understands.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the small per-user settings blob.
type Preferences struct {
	Theme string `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight}
}
