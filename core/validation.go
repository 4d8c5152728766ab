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
	"math"
)

// ValidateRecommendation validates a Recommendation according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Genre must have at least one entry
//   - Rating must be finite (not NaN or Inf)
//   - MatchScore must be within [0, 1] inclusive
func ValidateRecommendation(rec *Recommendation) error {
	if rec == nil {
		return fmt.Errorf("%w: recommendation is nil", ErrInvalidRecommendation)
	}

	if rec.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecommendation, ErrEmptyTitle)
	}

	if len(rec.Genre) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecommendation, ErrEmptyGenre)
	}

	if math.IsNaN(rec.Rating) || math.IsInf(rec.Rating, 0) {
		return fmt.Errorf("%w: %w", ErrInvalidRecommendation, ErrInvalidRating)
	}

	if math.IsNaN(rec.MatchScore) || rec.MatchScore < 0 || rec.MatchScore > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidRecommendation, ErrMatchScoreOutOfRange)
	}

	return nil
}

// FilterRecommendations returns only the recommendations that pass validation.
// Invalid records are dropped silently; the caller receives the valid remainder
// in the original order.
func FilterRecommendations(recs []Recommendation) []Recommendation {
	valid := make([]Recommendation, 0, len(recs))
	for i := range recs {
		if err := ValidateRecommendation(&recs[i]); err == nil {
			valid = append(valid, recs[i])
		}
	}
	return valid
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Text must not be empty
//
// NOT validated (populated by the ingestion pipeline):
//   - Vector (can be empty until the embedding stage runs)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentID)
	}

	if doc.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentText)
	}

	return nil
}
