package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatusHappyPath(t *testing.T) {
	path := []struct {
		action string
		want   string
	}{
		{ActionSubmitFiles, StatusFileReview},
		{ActionApprove, StatusApproved},
		{ActionPrint, StatusPrinting},
		{ActionShip, StatusShipped},
		{ActionDeliver, StatusDelivered},
	}

	status := StatusCreated
	for _, step := range path {
		next, err := NextStatus(status, step.action)
		require.NoError(t, err, "from %s via %s", status, step.action)
		assert.Equal(t, step.want, next)
		status = next
	}
}

func TestNextStatusRejectAndCancel(t *testing.T) {
	next, err := NextStatus(StatusFileReview, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)

	for _, from := range []string{StatusCreated, StatusFileReview} {
		next, err := NextStatus(from, ActionCancel)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, next)
	}
}

func TestNextStatusInvalid(t *testing.T) {
	invalid := []struct{ from, action string }{
		{StatusCreated, ActionApprove},
		{StatusCreated, ActionShip},
		{StatusApproved, ActionCancel},
		{StatusDelivered, ActionDeliver},
		{StatusShipped, ActionReject},
		{StatusPrinting, ActionPrint},
		{StatusCancelled, ActionSubmitFiles},
		{StatusCreated, "bogus"},
	}
	for _, tc := range invalid {
		_, err := NextStatus(tc.from, tc.action)
		assert.ErrorIs(t, err, ErrInvalidTransition, "from=%s action=%s", tc.from, tc.action)
	}
}
