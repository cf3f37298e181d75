package port

// FireVisualSettings are the user-facing knobs of the fire animation and
// Fire windows.
type FireVisualSettings struct {
	ShowFireAnimation        bool
	OpenFireWindowByDefault  bool
	FireWindowFeatureEnabled bool
}

// FireSettingsProvider supplies FireVisualSettings and notifies on change.
type FireSettingsProvider interface {
	FireVisualSettings() FireVisualSettings
	OnFireVisualSettingsChange(fn func(FireVisualSettings))
}
