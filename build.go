package parselect

var _version = "0.1.0"

// Version is the version of the parselect code.
func Version() string {
	return _version
}
