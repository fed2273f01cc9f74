package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextInvoiceNumber(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"", "CHH-2026-0001"},
		{"CHH-2026-0001", "CHH-2026-0002"},
		{"CHH-2026-0042", "CHH-2026-0043"},
		{"CHH-2026-9999", "CHH-2026-10000"},
		{"garbage", "CHH-2026-0001"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nextInvoiceNumber(2026, tc.last), "last=%q", tc.last)
	}
}

func TestFileReviewEventApprove(t *testing.T) {
	now := time.Now()
	f := DesignFile{
		ID:       "file-1",
		OrderID:  "order-1",
		Filename: "card-front.pdf",
	}
	in := ReviewFileInput{FileID: f.ID, ReviewerID: "admin-1", Approve: true, Note: "bleed looks fine"}

	ev := fileReviewEvent(f, in, StatusFileReview, now)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "order-1", ev.OrderID)
	assert.Equal(t, "admin-1", ev.ActorUserID)
	assert.Equal(t, ActionReviewFile, ev.Action)
	assert.Equal(t, StatusFileReview, ev.FromStatus)
	assert.Equal(t, StatusFileReview, ev.ToStatus)
	require.NotNil(t, ev.Note)
	assert.Equal(t, "approved card-front.pdf: bleed looks fine", *ev.Note)
}

func TestFileReviewEventRejectWithoutNote(t *testing.T) {
	f := DesignFile{ID: "file-2", OrderID: "order-1", Filename: "card-back.pdf"}
	in := ReviewFileInput{FileID: f.ID, ReviewerID: "admin-1", Approve: false, Note: "  "}

	ev := fileReviewEvent(f, in, StatusFileReview, time.Now())

	require.NotNil(t, ev.Note)
	assert.Equal(t, "rejected card-back.pdf", *ev.Note)
}
