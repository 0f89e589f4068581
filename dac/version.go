package dac

// Driver version identifiers.
const (
	apiVersionMajor  = 1
	apiVersionMinor  = 1
	codeVersionMajor = 1
	codeVersionMinor = 3
)

// VersionInfo carries the static interface and implementation versions.
type VersionInfo struct {
	APIMajor  uint8
	APIMinor  uint8
	CodeMajor uint8
	CodeMinor uint8
}

// Version returns the build-time version identifiers of the driver.
func Version() VersionInfo {
	return VersionInfo{
		APIMajor:  apiVersionMajor,
		APIMinor:  apiVersionMinor,
		CodeMajor: codeVersionMajor,
		CodeMinor: codeVersionMinor,
	}
}
