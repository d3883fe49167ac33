package handler

const (
	// RootPath is the root path of the API route group.
	RootPath = "/api"

	// ErrNilRCSFatalLogMsg is used if router, cfg or store is nil.
	ErrNilRCSFatalLogMsg = "router, cfg or store is nil"
)
