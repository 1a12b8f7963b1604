package plugins

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// RemoteError is returned when a call to a plugin fails: the plugin reported
// an error, the connection broke, or the per-call deadline expired. Calls
// are never retried; the caller decides whether to proceed without the
// plugin.
type RemoteError struct {
	Slot    SlotID
	Plugin  string // plugin name, empty before the handshake completed
	Code    codes.Code
	Message string
}

func (e *RemoteError) Error() string {
	if e.Plugin == "" {
		return fmt.Sprintf("plugin slot %s: %s (%s)", e.Slot, e.Message, e.Code)
	}
	return fmt.Sprintf("plugin %s for slot %s: %s (%s)", e.Plugin, e.Slot, e.Message, e.Code)
}

// ValidatorError is returned when the handshake succeeds but the plugin's
// advertised slot version is outside the range this engine accepts.
type ValidatorError struct {
	Slot     SlotID
	Plugin   string
	Version  string
	Accepted string
}

func (e *ValidatorError) Error() string {
	return fmt.Sprintf("plugin %s for slot %s speaks version %s, accepted range is %s",
		e.Plugin, e.Slot, e.Version, e.Accepted)
}
