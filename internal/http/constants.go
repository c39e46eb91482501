package httpx

import "time"

// SessionCookieName is the cookie carrying the access token for browser sessions.
const SessionCookieName = "library_token"

// SessionCookieMaxAge matches the default token lifetime.
const SessionCookieMaxAge = int(30 * time.Minute / time.Second)

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageLogin    = "login"
	PageRegister = "register"
	PageBooks    = "books"
	PageBookForm = "book-form"
	PageNotFound = "not-found"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)
