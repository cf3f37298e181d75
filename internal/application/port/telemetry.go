package port

import "time"

// BurnStep names one unit of work of a burn, used for telemetry.
type BurnStep string

const (
	StepSessionState   BurnStep = "session_state"
	StepSyncMetadata   BurnStep = "sync_metadata"
	StepTabCleanup     BurnStep = "tab_cleanup"
	StepTabs           BurnStep = "tabs"
	StepWebCache       BurnStep = "web_cache"
	StepHistory        BurnStep = "history"
	StepVisitedLinks   BurnStep = "visited_links"
	StepFavicons       BurnStep = "favicons"
	StepPermissions    BurnStep = "permissions"
	StepDownloads      BurnStep = "downloads"
	StepAutoconsent    BurnStep = "autoconsent"
	StepZoomLevels     BurnStep = "zoom_levels"
	StepRecentlyClosed BurnStep = "recently_closed"
	StepChatHistory    BurnStep = "chat_history"
	StepPrivacyStats   BurnStep = "privacy_stats"
	StepAnimation      BurnStep = "fire_animation"
)

// BurnReporter observes burns. It is a side channel and never affects the
// outcome of a burn.
type BurnReporter interface {
	BurnStarted(kind string)
	BurnFinished(kind string, d time.Duration)
	StepFinished(step BurnStep, d time.Duration, err error)
	ResidueFound(step BurnStep, count int64)
	InvariantViolated(kind string, domains []string)
	OverlappingBurn(kind string)
}
