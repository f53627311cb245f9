package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AppointmentStatus
		ok   bool
	}{
		{name: "canonical confirmed", raw: "confirmed", want: StatusConfirmed, ok: true},
		{name: "canonical day_off", raw: "day_off", want: StatusDayOff, ok: true},
		{name: "uppercase and spaces", raw: "  COMPLETED ", want: StatusCompleted, ok: true},
		{name: "spanish cancelled", raw: "cancelada", want: StatusCancelled, ok: true},
		{name: "spanish confirmed", raw: "confirmada", want: StatusConfirmed, ok: true},
		{name: "legacy shop cancellation", raw: "cancelled_by_shop", want: StatusCancelledByBarber, ok: true},
		{name: "legacy user cancellation", raw: "cancelled_by_user", want: StatusCancelledByClient, ok: true},
		{name: "hyphenated no-show", raw: "no-show", want: StatusNoShow, ok: true},
		{name: "dayoff without underscore", raw: "dayoff", want: StatusDayOff, ok: true},
		{name: "unknown cancel variant", raw: "cancellation_requested", want: StatusCancelled, ok: true},
		{name: "unknown status", raw: "pending", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "whitespace only", raw: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAppointmentStatus_Predicates(t *testing.T) {
	assert.True(t, StatusCancelled.IsCancelled())
	assert.True(t, StatusCancelledByBarber.IsCancelled())
	assert.True(t, StatusCancelledByClient.IsCancelled())
	assert.False(t, StatusConfirmed.IsCancelled())
	assert.False(t, StatusNoShow.IsCancelled())

	assert.True(t, StatusDayOff.IsSynthetic())
	assert.True(t, StatusLeaveEarly.IsSynthetic())
	assert.False(t, StatusConfirmed.IsSynthetic())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.True(t, StatusCancelledByClient.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusDayOff.IsTerminal())
}

func TestAppointment_OccupiesSlot(t *testing.T) {
	// Подтвержденные, завершенные и неявки держат слот занятым
	for _, status := range []AppointmentStatus{StatusConfirmed, StatusCompleted, StatusNoShow} {
		appt := &Appointment{Status: status}
		assert.True(t, appt.OccupiesSlot(), "status %s", status)
	}

	// Отмены освобождают слот, маркеры расписания обрабатываются отдельно
	for _, status := range []AppointmentStatus{
		StatusCancelled, StatusCancelledByBarber, StatusCancelledByClient,
		StatusDayOff, StatusLeaveEarly,
	} {
		appt := &Appointment{Status: status}
		assert.False(t, appt.OccupiesSlot(), "status %s", status)
	}
}

func TestAppointment_Transitions(t *testing.T) {
	confirmed := &Appointment{Status: StatusConfirmed}
	assert.True(t, confirmed.CanBeCancelled())
	assert.True(t, confirmed.CanBeCompleted())
	assert.True(t, confirmed.CanBeMarkedNoShow())
	assert.False(t, confirmed.CanBeHidden())

	completed := &Appointment{Status: StatusCompleted}
	assert.False(t, completed.CanBeCancelled())
	assert.False(t, completed.CanBeCompleted())
	assert.False(t, completed.CanBeMarkedNoShow())
	assert.True(t, completed.CanBeHidden())

	cancelled := &Appointment{Status: StatusCancelledByClient}
	assert.False(t, cancelled.CanBeCancelled())
	assert.True(t, cancelled.CanBeHidden())

	// Маркеры расписания снимаются через отмену, но не завершаются
	marker := &Appointment{Status: StatusDayOff}
	assert.True(t, marker.CanBeCancelled())
	assert.False(t, marker.CanBeCompleted())
	assert.False(t, marker.CanBeHidden())
}
