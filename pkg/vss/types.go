package vss

// Item is a stored value together with its server-assigned version. Version
// -1 means the server did not report one.
type Item struct {
	Key     string
	Value   []byte
	Version int64
}

// KeyVersion is the value-less projection returned by ListKeys, the cheap
// path for existence and version checks.
type KeyVersion struct {
	Key     string
	Version int64
}

// KeyValue is one entry of a batch write.
type KeyValue struct {
	Key   string
	Value []byte
}
