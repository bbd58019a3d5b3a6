package proto

// ErrorCode classifies a server-side failure in an ErrorResponse.
type ErrorCode int32

const (
	CodeUnknown        ErrorCode = 0
	CodeInternal       ErrorCode = 1
	CodeConflict       ErrorCode = 2
	CodeInvalidRequest ErrorCode = 3
	CodeNoSuchKey      ErrorCode = 4
	CodeAuth           ErrorCode = 5
)

// String returns the wire-level enum name, which is what server logs use.
func (c ErrorCode) String() string {
	switch c {
	case CodeUnknown:
		return "UNKNOWN"
	case CodeInternal:
		return "INTERNAL_SERVER_EXCEPTION"
	case CodeConflict:
		return "CONFLICT_EXCEPTION"
	case CodeInvalidRequest:
		return "INVALID_REQUEST_EXCEPTION"
	case CodeNoSuchKey:
		return "NO_SUCH_KEY_EXCEPTION"
	case CodeAuth:
		return "AUTH_EXCEPTION"
	default:
		return "UNKNOWN"
	}
}

// KeyValue is the item triple used across requests and responses. On a put,
// Version carries the version the client is aware of (-1 disables the
// optimistic-concurrency check); on responses it carries the server-assigned
// version.
type KeyValue struct {
	Key     string // field 1
	Version int64  // field 2
	Value   []byte // field 3
}

type GetObjectRequest struct {
	StoreID string // field 1
	Key     string // field 2
}

type GetObjectResponse struct {
	Value *KeyValue // field 2
}

type PutObjectRequest struct {
	StoreID          string      // field 1
	GlobalVersion    *int64      // field 2, optional
	TransactionItems []*KeyValue // field 3
	DeleteItems      []*KeyValue // field 4
}

// PutObjectResponse returns the written items with their server-assigned
// versions, in request order.
type PutObjectResponse struct {
	Items []*KeyValue // field 1
}

type DeleteObjectRequest struct {
	StoreID  string    // field 1
	KeyValue *KeyValue // field 2
}

type DeleteObjectResponse struct{}

type ListKeyVersionsRequest struct {
	StoreID   string // field 1
	KeyPrefix string // field 2, optional
	PageSize  int32  // field 3, optional
	PageToken string // field 4, optional
}

type ListKeyVersionsResponse struct {
	KeyVersions   []*KeyValue // field 1, Value left empty
	NextPageToken string      // field 2, empty on the last page
	GlobalVersion *int64      // field 3, optional
}

type ListObjectsRequest struct {
	StoreID   string // field 1
	KeyPrefix string // field 2, optional
	PageSize  int32  // field 3, optional
	PageToken string // field 4, optional
}

type ListObjectsResponse struct {
	Objects       []*KeyValue // field 1
	NextPageToken string      // field 2, empty on the last page
}

type ErrorResponse struct {
	ErrorCode ErrorCode // field 1
	Message   string    // field 2
}

// Storable is the sealed envelope stored as an item's value in authenticated
// mode: Data is the ciphertext of a serialized PlaintextBlob.
type Storable struct {
	Data               []byte              // field 1
	EncryptionMetadata *EncryptionMetadata // field 2
}

type EncryptionMetadata struct {
	CipherFormat string // field 1
	Nonce        []byte // field 2
	Tag          []byte // field 3
}

// PlaintextBlob binds a value to the version it was written against, so a
// server cannot silently substitute an older encrypted payload.
type PlaintextBlob struct {
	Value   []byte // field 1
	Version int64  // field 2
}
