package verify

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// decodeLLMJSON strips Markdown code fencing from an LLM reply and decodes
// the remainder into v. If direct decoding fails it retries on the outermost
// brace-delimited region before giving up.
func decodeLLMJSON(response string, v interface{}) error {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if matches := codeFenceRe.FindStringSubmatch(response); len(matches) > 1 {
			response = matches[1]
		}
	}

	if err := json.Unmarshal([]byte(response), v); err != nil {
		start := strings.Index(response, "{")
		end := strings.LastIndex(response, "}")
		if start >= 0 && end > start {
			if err := json.Unmarshal([]byte(response[start:end+1]), v); err != nil {
				return fmt.Errorf("invalid JSON: %w", err)
			}
			return nil
		}
		return fmt.Errorf("no JSON found in response")
	}

	return nil
}
