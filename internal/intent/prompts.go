package intent

import (
	"fmt"
	"strings"
)

// buildPrompt renders the extraction prompt. The example pair anchors the
// output shape for small local models.
func buildPrompt(userText string, vocabulary []string) string {
	return fmt.Sprintf(`You are an inventory matcher.
1. Identify the user's desired item.
2. Find the SINGLE best matching tag from this list: [%s]
3. Determine if they want a random/different one (true/false).

Return ONLY a JSON object with keys "tag" and "random". Do not write any other text.

Example User: "I want a seat"
Example JSON: {"tag": "Chair", "random": false}

User: %s`, strings.Join(vocabulary, ", "), userText)
}
