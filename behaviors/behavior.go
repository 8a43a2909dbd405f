package behaviors

import (
	"fmt"
	"log"

	"modbot/models"
)

// Dispatcher is the narrow surface behaviors need from the dispatch core.
type Dispatcher interface {
	Dispatch(notification models.Notification)
}

// Behavior bridges one family of raw gateway callbacks to notifications.
// Start registers the adapter callbacks against the gateway session and Stop
// removes exactly those callbacks. Start must not be called twice without an
// intervening Stop - the gateway would invoke the adapters twice.
type Behavior interface {
	Name() string
	Start() error
	Stop()
}

// Registry owns all behaviors and drives Start/Stop across the process
// lifecycle. Start/Stop must not race active dispatching: StartAll runs
// before the gateway connection opens and StopAll before it closes.
type Registry struct {
	behaviors []Behavior
}

func NewRegistry(behaviors ...Behavior) *Registry {
	return &Registry{behaviors: behaviors}
}

// StartAll starts every registered behavior. A failed start stops the ones
// already started and reports the failure - the process should not come up
// half-subscribed.
func (r *Registry) StartAll() error {
	started := []Behavior{}
	for _, behavior := range r.behaviors {
		if err := behavior.Start(); err != nil {
			for _, startedBehavior := range started {
				startedBehavior.Stop()
			}
			return fmt.Errorf("failed to start behavior %s: %w", behavior.Name(), err)
		}
		started = append(started, behavior)
		log.Printf("✅ Started behavior %s", behavior.Name())
	}
	return nil
}

// StopAll stops every registered behavior, unsubscribing from the gateway
// before the underlying connection closes.
func (r *Registry) StopAll() {
	for _, behavior := range r.behaviors {
		behavior.Stop()
		log.Printf("✅ Stopped behavior %s", behavior.Name())
	}
}
