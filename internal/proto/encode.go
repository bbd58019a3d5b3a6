package proto

import "google.golang.org/protobuf/encoding/protowire"

// Scalar fields follow proto3 presence rules: zero values are omitted unless
// the schema marks the field optional, in which case a non-nil pointer is
// always emitted.

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendInt64Field(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendInt32Field(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func (m *KeyValue) append(b []byte) []byte {
	b = appendStringField(b, 1, m.Key)
	b = appendInt64Field(b, 2, m.Version)
	b = appendBytesField(b, 3, m.Value)
	return b
}

func (m *KeyValue) Marshal() []byte {
	return m.append(nil)
}

func (m *GetObjectRequest) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.StoreID)
	b = appendStringField(b, 2, m.Key)
	return b
}

func (m *GetObjectResponse) Marshal() []byte {
	var b []byte
	if m.Value != nil {
		b = appendMessageField(b, 2, m.Value.Marshal())
	}
	return b
}

func (m *PutObjectRequest) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.StoreID)
	if m.GlobalVersion != nil {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*m.GlobalVersion))
	}
	for _, kv := range m.TransactionItems {
		b = appendMessageField(b, 3, kv.Marshal())
	}
	for _, kv := range m.DeleteItems {
		b = appendMessageField(b, 4, kv.Marshal())
	}
	return b
}

func (m *PutObjectResponse) Marshal() []byte {
	var b []byte
	for _, kv := range m.Items {
		b = appendMessageField(b, 1, kv.Marshal())
	}
	return b
}

func (m *DeleteObjectRequest) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.StoreID)
	if m.KeyValue != nil {
		b = appendMessageField(b, 2, m.KeyValue.Marshal())
	}
	return b
}

func (m *DeleteObjectResponse) Marshal() []byte {
	return []byte{}
}

func (m *ListKeyVersionsRequest) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.StoreID)
	b = appendStringField(b, 2, m.KeyPrefix)
	b = appendInt32Field(b, 3, m.PageSize)
	b = appendStringField(b, 4, m.PageToken)
	return b
}

func (m *ListKeyVersionsResponse) Marshal() []byte {
	var b []byte
	for _, kv := range m.KeyVersions {
		b = appendMessageField(b, 1, kv.Marshal())
	}
	b = appendStringField(b, 2, m.NextPageToken)
	if m.GlobalVersion != nil {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*m.GlobalVersion))
	}
	return b
}

func (m *ListObjectsRequest) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.StoreID)
	b = appendStringField(b, 2, m.KeyPrefix)
	b = appendInt32Field(b, 3, m.PageSize)
	b = appendStringField(b, 4, m.PageToken)
	return b
}

func (m *ListObjectsResponse) Marshal() []byte {
	var b []byte
	for _, kv := range m.Objects {
		b = appendMessageField(b, 1, kv.Marshal())
	}
	b = appendStringField(b, 2, m.NextPageToken)
	return b
}

func (m *ErrorResponse) Marshal() []byte {
	var b []byte
	if m.ErrorCode != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.ErrorCode))
	}
	b = appendStringField(b, 2, m.Message)
	return b
}

func (m *Storable) Marshal() []byte {
	var b []byte
	b = appendBytesField(b, 1, m.Data)
	if m.EncryptionMetadata != nil {
		b = appendMessageField(b, 2, m.EncryptionMetadata.Marshal())
	}
	return b
}

func (m *EncryptionMetadata) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.CipherFormat)
	b = appendBytesField(b, 2, m.Nonce)
	b = appendBytesField(b, 3, m.Tag)
	return b
}

func (m *PlaintextBlob) Marshal() []byte {
	var b []byte
	b = appendBytesField(b, 1, m.Value)
	b = appendInt64Field(b, 2, m.Version)
	return b
}
