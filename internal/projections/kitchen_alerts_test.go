package projections_test

import (
	"testing"

	"orderhub/internal/core/ports"
	"orderhub/internal/projections"

	"github.com/stretchr/testify/assert"
)

func alertEvent(action, id, status string) ports.Event {
	return ports.Event{
		Entity:  ports.EntityOrder,
		Action:  action,
		Payload: []byte(`{"id":"` + id + `","status":"` + status + `"}`),
	}
}

func TestKitchenAlerter_AlertsOncePerNewOrder(t *testing.T) {
	alerter := projections.NewKitchenAlerter()

	assert.True(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")))
	assert.True(t, alerter.Observe(alertEvent(ports.ActionInsert, "o2", "new")))
}

func TestKitchenAlerter_ReplayOfSeenPairStaysSilent(t *testing.T) {
	alerter := projections.NewKitchenAlerter()

	assert.True(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")))

	// reconnect replays the same insertion
	assert.False(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")))
	assert.False(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")))
}

func TestKitchenAlerter_StatusUpdatesNeverAlert(t *testing.T) {
	alerter := projections.NewKitchenAlerter()

	assert.True(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")))
	assert.False(t, alerter.Observe(alertEvent(ports.ActionUpdate, "o1", "accepted")))
	assert.False(t, alerter.Observe(alertEvent(ports.ActionUpdate, "o1", "in_progress")))

	// replaying those updates after a reconnect is also silent
	assert.False(t, alerter.Observe(alertEvent(ports.ActionUpdate, "o1", "accepted")))
}

func TestKitchenAlerter_UpdateSeenBeforeInsertReplaySuppressesAlert(t *testing.T) {
	alerter := projections.NewKitchenAlerter()

	// subscriber came up mid-stream: first saw an update, then a replayed insert
	assert.False(t, alerter.Observe(alertEvent(ports.ActionUpdate, "o1", "accepted")))
	assert.False(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")),
		"order was already on the board, no alert")
}

func TestKitchenAlerter_IgnoresNonOrderEvents(t *testing.T) {
	alerter := projections.NewKitchenAlerter()

	event := ports.Event{
		Entity:  ports.EntityServiceRequest,
		Action:  ports.ActionInsert,
		Payload: []byte(`{"id":"r1","status":"pending"}`),
	}
	assert.False(t, alerter.Observe(event))
}

func TestKitchenAlerter_ForgetAllowsReuseAfterDeletion(t *testing.T) {
	alerter := projections.NewKitchenAlerter()

	assert.True(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")))
	alerter.Forget("o1")
	assert.True(t, alerter.Observe(alertEvent(ports.ActionInsert, "o1", "new")))
}
