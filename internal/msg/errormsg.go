package msg

// target resolution
const (
	// MissingTarget indicates that TARGET is not set
	MissingTarget = "TARGET environment variable is required"
	// ConfigNotFound indicates that the configuration file of a target does not exist
	ConfigNotFound = "configuration file not found: %s"
	// InvalidMode indicates an unknown config mode
	InvalidMode = "invalid mode %q, expected one of: auto, source, compiled"
	// UnknownRecord indicates that no built-in configuration record exists for a target
	UnknownRecord = "no configuration record for target %q"
)

// launcher
const (
	// EmptyLauncherCommand indicates that no launcher command is configured
	EmptyLauncherCommand = "no launcher command configured"
	// LauncherFailed indicates that the launcher could not be started
	LauncherFailed = "failed to run launcher"
	// AppiumNotReady indicates that the appium server did not report ready in time
	AppiumNotReady = "appium server at %s is not ready"
)

// settings
const (
	// InvalidSettings indicates that the settings file is malformed
	InvalidSettings = "invalid settings file"
)
