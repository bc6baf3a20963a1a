package model

// Level is the kind of a user notification.
type Level int

const (
	// LevelInfo is a neutral message.
	LevelInfo Level = iota

	// LevelSuccess reports that something finished well.
	LevelSuccess

	// LevelWarning reports a limit or a recoverable problem.
	LevelWarning

	// LevelError reports a failure the user has to act on.
	LevelError
)

// String returns a lower-case name for the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Icon returns the symbol shown next to a notification of this level.
func (l Level) Icon() string {
	switch l {
	case LevelSuccess:
		return "✅"
	case LevelError:
		return "❌"
	case LevelWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// Notification is a short message shown to the user.
type Notification struct {
	Level   Level
	Message string
}
