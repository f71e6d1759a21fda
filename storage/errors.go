// Copyright 2025 Ticketry Authors
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

import "errors"

var (
	// ErrNotFound indicates the requested chunk or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTransactionFailed indicates a storage transaction did not commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrStorageClosed indicates an operation on a closed backend.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery indicates invalid query parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrSerializationFailed indicates stored bytes could not be decoded.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates a stored value was cut short.
	ErrTruncatedData = errors.New("truncated data")
)
