// Copyright 2025 Cafecito Works
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

	"github.com/cafecito/beansack/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalBean serializes a Bean to bytes.
func MarshalBean(bean *core.Bean) []byte {
	buf := make([]byte, core.BeanMUS.Size(*bean))
	core.BeanMUS.Marshal(*bean, buf)
	return buf
}

// UnmarshalBean deserializes a Bean from bytes.
func UnmarshalBean(data []byte) (*core.Bean, error) {
	bean, _, err := core.BeanMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &bean, nil
}

// MarshalChatter serializes a Chatter to bytes.
func MarshalChatter(chatter *core.Chatter) []byte {
	buf := make([]byte, core.ChatterMUS.Size(*chatter))
	core.ChatterMUS.Marshal(*chatter, buf)
	return buf
}

// UnmarshalChatter deserializes a Chatter from bytes.
func UnmarshalChatter(data []byte) (*core.Chatter, error) {
	chatter, _, err := core.ChatterMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &chatter, nil
}
