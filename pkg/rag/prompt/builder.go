package prompt

import (
	"fmt"
	"strings"

	"rbac-chatbot-be/pkg/rag"
)

const groundedTemplate = "Answer the question using only the context below.\n\n%s\n\nQuestion: %s"

// BuildGrounded stuffs the retrieved chunks into the answer prompt. The model
// is told to use only the supplied context, nothing else.
func BuildGrounded(question string, results []rag.Result) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(res.Content)
	}
	return fmt.Sprintf(groundedTemplate, b.String(), question)
}
