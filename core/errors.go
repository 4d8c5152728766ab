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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecommendation indicates a Recommendation failed validation.
	ErrInvalidRecommendation = errors.New("invalid recommendation")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyTitle indicates the recommendation title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyGenre indicates the genre list has no entries.
	ErrEmptyGenre = errors.New("genre list must have at least one entry")

	// ErrInvalidRating indicates the rating is NaN or infinite.
	ErrInvalidRating = errors.New("rating must be finite")

	// ErrMatchScoreOutOfRange indicates the match score is outside [0, 1].
	ErrMatchScoreOutOfRange = errors.New("match score must be within [0, 1]")

	// ErrEmptyDocumentID indicates the document ID is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrEmptyDocumentText indicates the document text is empty.
	ErrEmptyDocumentText = errors.New("document text cannot be empty")

	// ErrZeroVector indicates a vector with zero L2 norm.
	ErrZeroVector = errors.New("vector has zero norm")
)
