package domain

// Resource is any remotely persisted entity identified by a numeric id.
// The id is assigned by the server and stays absent until the create
// round-trip completes.
type Resource interface {
	Identity() (int32, bool)
}

// Option is a value/label pair rendered as a select option
type Option struct {
	Value string
	Text  string
}

func identity(id *int32) (int32, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}

// Int32Ptr returns a pointer to v
func Int32Ptr(v int32) *int32 {
	return &v
}
