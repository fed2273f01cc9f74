package orders

// Admin (and system) actions on an order.
const (
	ActionSubmitFiles = "submit_files"
	ActionApprove     = "approve"
	ActionReject      = "reject"
	ActionPrint       = "print"
	ActionShip        = "ship"
	ActionDeliver     = "deliver"
	ActionCancel      = "cancel"

	// ActionReviewFile is an audit-only event; a verdict on a design
	// file never moves the order's status by itself.
	ActionReviewFile = "review_file"
)

// NextStatus resolves the target status for an action given the current
// one, or ErrInvalidTransition when the action does not apply.
func NextStatus(from, action string) (string, error) {
	switch action {
	case ActionSubmitFiles:
		if from == StatusCreated {
			return StatusFileReview, nil
		}
	case ActionApprove:
		if from == StatusFileReview {
			return StatusApproved, nil
		}
	case ActionReject:
		if from == StatusFileReview {
			return StatusRejected, nil
		}
	case ActionPrint:
		if from == StatusApproved {
			return StatusPrinting, nil
		}
	case ActionShip:
		if from == StatusPrinting {
			return StatusShipped, nil
		}
	case ActionDeliver:
		if from == StatusShipped {
			return StatusDelivered, nil
		}
	case ActionCancel:
		if from == StatusCreated || from == StatusFileReview {
			return StatusCancelled, nil
		}
	}
	return "", ErrInvalidTransition
}
