package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rackwalk/rackwalk/internal/models"
)

// parseRecordJSON pulls the label fields out of a model reply. The reply is
// semi-structured at best: some models wrap the JSON in markdown fences or
// surround it with prose, so slice out the outermost object first.
func parseRecordJSON(text string) (models.RawRecord, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return models.RawRecord{}, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return models.RawRecord{}, fmt.Errorf("invalid JSON object in response")
	}

	var raw models.RawRecord
	if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &raw); err != nil {
		return models.RawRecord{}, fmt.Errorf("unmarshaling record json: %w", err)
	}

	return raw, nil
}
