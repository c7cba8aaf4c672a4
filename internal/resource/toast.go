package resource

// ToastKind is the severity of a toast
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification shown once on the next rendered page
type Toast struct {
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

// Messages shown to the user
const (
	MsgSuccess       = "Request processed successfully!"
	MsgFailure       = "An error occurred while processing your request"
	MsgConnectivity  = "Failed to communicate with the server. Please try again later."
	MsgLoadListError = "Error loading the list"
	MsgDeleteError   = "Error deleting the item"
	MsgConfirmDelete = "Do you really want to delete this item?"
)

// SuccessToast returns the toast shown after a processed request
func SuccessToast() *Toast {
	return &Toast{Kind: ToastSuccess, Message: MsgSuccess}
}

// ErrorToast returns an error toast with msg
func ErrorToast(msg string) *Toast {
	return &Toast{Kind: ToastError, Message: msg}
}
