// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/poiesic/animerec/core"
)

// vectorSer serializes embedding vectors as a length-prefixed sequence of raw
// float32 values.
var vectorSer = ord.NewSliceSer[float32](raw.Float32)

// documentSer is the MUS serializer for core.Document. Field order is fixed;
// changing it breaks on-disk compatibility with existing collections.
type documentSer struct{}

// DocumentMUS serializes core.Document values in the MUS format.
var DocumentMUS = documentSer{}

func (documentSer) Marshal(doc core.Document, bs []byte) (n int) {
	n = ord.String.Marshal(doc.Id, bs)
	n += ord.String.Marshal(doc.Text, bs[n:])
	n += vectorSer.Marshal(doc.Vector, bs[n:])
	return n
}

func (documentSer) Unmarshal(bs []byte) (doc core.Document, n int, err error) {
	var n1 int
	doc.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return doc, n, err
	}
	doc.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	doc.Vector, n1, err = vectorSer.Unmarshal(bs[n:])
	n += n1
	return doc, n, err
}

func (documentSer) Size(doc core.Document) (size int) {
	size = ord.String.Size(doc.Id)
	size += ord.String.Size(doc.Text)
	size += vectorSer.Size(doc.Vector)
	return size
}

func (documentSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = vectorSer.Skip(bs[n:])
	n += n1
	return n, err
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, DocumentMUS.Size(*doc))
	DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}
