package cqrs

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// CreateChanges returns a JSON merge patch holding only the fields that differ
// between original and updated. Both values must marshal to JSON objects.
func CreateChanges(original, updated interface{}) (map[string]interface{}, error) {
	if original == nil || updated == nil {
		return nil, fmt.Errorf("original or updated state is nil")
	}

	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal original state: %w", err)
	}

	updatedJSON, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal updated state: %w", err)
	}

	mergePatch, err := jsonpatch.CreateMergePatch(originalJSON, updatedJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge patch: %w", err)
	}

	var changes map[string]interface{}
	if err := json.Unmarshal(mergePatch, &changes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal merge patch: %w", err)
	}

	return changes, nil
}
