package analysis

import (
	"encoding/json"
	"strings"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// ParseResponse decodes a completion response body into an AnalysisResult.
//
// The only hard guarantee is "valid JSON or explicit failure": an empty body
// or a body without a parseable JSON object fails with a ServiceResponseError,
// and nothing else is validated. Every field of the result is optional;
// consumers must tolerate absent examples and explanations.
func ParseResponse(body string) (domain.AnalysisResult, error) {
	if strings.TrimSpace(body) == "" {
		return domain.AnalysisResult{}, domain.NewServiceResponseError("empty body", nil)
	}

	// The model occasionally wraps the object in prose or a markdown fence;
	// take the span between the first { and the last }.
	jsonStr, ok := extractJSON(body)
	if !ok {
		return domain.AnalysisResult{}, domain.NewServiceResponseError("no JSON object in body", nil)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return domain.AnalysisResult{}, domain.NewServiceResponseError("invalid JSON", err)
	}

	return result, nil
}

// extractJSON finds the first complete JSON object span in a string.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
