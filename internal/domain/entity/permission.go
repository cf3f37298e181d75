package entity

// PermissionType represents the type of permission granted to a site.
type PermissionType string

const (
	PermissionTypeMicrophone   PermissionType = "microphone"
	PermissionTypeCamera       PermissionType = "camera"
	PermissionTypeGeolocation  PermissionType = "geolocation"
	PermissionTypeNotification PermissionType = "notification"
	PermissionTypePopups       PermissionType = "popups"
	PermissionTypeExternalApp  PermissionType = "external_scheme"
)

// PermissionDecision represents the user's decision for a permission.
type PermissionDecision string

const (
	// PermissionGranted means the permission was allowed.
	PermissionGranted PermissionDecision = "granted"

	// PermissionDenied means the permission was denied.
	PermissionDenied PermissionDecision = "denied"

	// PermissionPrompt means no decision has been made yet (default state).
	PermissionPrompt PermissionDecision = "prompt"
)

// PermissionRecord stores a permission decision for a site.
// Domain is the eTLD+1 the decision applies to.
type PermissionRecord struct {
	Domain    string
	Type      PermissionType
	Decision  PermissionDecision
	UpdatedAt int64 // Unix seconds
}

// IsGranted returns true if the permission is granted.
func (p *PermissionRecord) IsGranted() bool {
	return p.Decision == PermissionGranted
}
