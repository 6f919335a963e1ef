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


package core

import (
	"fmt"
	"time"
)

// ValidateDocumentRecord validates a DocumentRecord according to domain rules.
//
// Validation rules:
//   - Key must not be empty
//   - UploadedAt must not be in the future
//
// NOT validated (populated during ingestion):
//   - PageCount and ChunkCount (0 until the pipeline runs)
//   - IngestedAt (zero until the document is indexed)
func ValidateDocumentRecord(record *DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDocumentRecord)
	}

	if record.Key == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrEmptyStorageKey)
	}

	if !record.UploadedAt.IsZero() && !IsValidTimestamp(record.UploadedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidatePage validates a Page according to domain rules.
func ValidatePage(page *Page) error {
	if page == nil {
		return fmt.Errorf("%w: page is nil", ErrInvalidPage)
	}

	if page.Number < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidPage, ErrInvalidPageNumber)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
