package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure, save failed)
	ExitConfigError = 2 // Configuration error (bad config file, invalid log level)
	ExitDataError   = 3 // Data error (invalid year, empty title, unknown field)
)
