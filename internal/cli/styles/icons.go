package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconFire      = "\uf06d" // flame
	IconShield    = "\uf132" // shield (fireproof)
	IconClock     = "\uf017" // clock (history)
	IconGlobe     = "\uf0ac" // site
	IconDatabase  = "\uf1c0" // stored data
	IconComment   = "\uf086" // chat history
	IconCheck     = "\uf00c"
	IconX         = "\uf00d"
	IconWarning   = "\uf071"
	IconInfo      = "\uf05a"
	IconChartLine = "\uf201" // metrics

	IconCheckboxEmpty   = "\uf096"
	IconCheckboxChecked = "\uf046"

	IconCursor = "\uf054" // chevron-right
)
