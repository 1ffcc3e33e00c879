package domain

// FunctionCallRequest is a tool call named by the remote model. Arguments are
// never read.
type FunctionCallRequest struct {
	Name string
}

type FunctionCallResult struct {
	Name    string
	Payload map[string]string
}

// GroundingMetadata mirrors the supporting sources a reply may carry.
// A nil Chunks slice means the reply had no chunk list at all.
type GroundingMetadata struct {
	Chunks []GroundingChunk
}

type GroundingChunk struct {
	Web *WebSource
}

// WebSource fields are nil when the remote omitted them.
type WebSource struct {
	URI   *string
	Title *string
}

// Content is what gets sent to a remote session: either user text or a batch
// of tool results.
type Content struct {
	Text    string
	Results []FunctionCallResult
}

func TextContent(text string) Content {
	return Content{Text: text}
}

func ResultsContent(results []FunctionCallResult) Content {
	return Content{Results: results}
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Reply is a single response from a remote session.
type Reply struct {
	Text      string
	ToolCalls []FunctionCallRequest
	Grounding *GroundingMetadata
	Usage     Usage
}
