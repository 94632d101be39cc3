package generate

import (
	"fmt"
	"strings"

	"github.com/sitewright/sitewright/internal/llm"
	"github.com/sitewright/sitewright/internal/project"
	"github.com/sitewright/sitewright/internal/retrieval"
)

const systemPrompt = `You are an expert web developer generating complete static websites. Respond with a single JSON object and nothing else. The object has exactly this shape:

{"files": [{"path": "index.html", "content": "<file content>"}]}

Rules:
- Every site needs an index.html entry page.
- Use plain HTML, CSS and JavaScript. Shared styles go in a .css file, shared behavior in a .js file.
- Reference pages with relative links (href="about.html"), never absolute paths or URLs.
- Every file referenced by src or href must appear in the files array.
- Do not wrap the JSON in markdown fences or add commentary.`

const generatePromptTemplate = `Build a complete multi-page static website for this request:

%s

Return the full site as JSON.`

const modifyPromptTemplate = `Modify an existing static website according to this request:

%s

The site currently contains these files:
%s

Return the COMPLETE updated site as JSON, including every file that should remain, with full content. Files you omit will be deleted.`

// buildGenerateMessages constructs the prompt for initial site generation.
func buildGenerateMessages(prompt string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(generatePromptTemplate, prompt)},
	}
}

// buildModifyMessages constructs the prompt for modifying an existing
// site. When retrieval snippets are available the most relevant files are
// included in full and the rest as a path listing; otherwise every file is
// included in full.
func buildModifyMessages(prompt string, fs *project.FileSet, relevant []retrieval.Snippet) []llm.Message {
	var listing strings.Builder

	if len(relevant) > 0 {
		included := make(map[string]bool, len(relevant))
		for _, s := range relevant {
			included[s.Path] = true
		}
		for _, f := range fs.Files {
			if included[f.Path] {
				writeFileBlock(&listing, f.Path, f.Content)
			}
		}
		listing.WriteString("\nOther files (request them unchanged by regenerating them as-is):\n")
		for _, f := range fs.Files {
			if !included[f.Path] {
				fmt.Fprintf(&listing, "- %s (%s, %d bytes)\n", f.Path, f.Kind, f.Size)
			}
		}
	} else {
		for _, f := range fs.Files {
			writeFileBlock(&listing, f.Path, f.Content)
		}
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(modifyPromptTemplate, prompt, listing.String())},
	}
}

func writeFileBlock(b *strings.Builder, path, content string) {
	fmt.Fprintf(b, "\n--- %s ---\n%s\n", path, content)
}
