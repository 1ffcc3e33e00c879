package service

import "github.com/set-night/endoally/internal/domain"

// ToolName is a function the remote model may call.
type ToolName string

const (
	ToolRecordUserInsight    ToolName = "recordUserInsight"
	ToolContributeToResearch ToolName = "contributeToResearch"
	ToolGetContributors      ToolName = "getContributors"
	ToolGetWebsiteResources  ToolName = "getWebsiteResources"
)

const contributorsText = `The Endo Violence Collective was co-founded by two key figures:

**Alicja Pawluczuk/HYSTERA** is a researcher, artist, and activist whose work explores the intersections of digital inclusion, social justice, and health. You can explore her art and research on her website: <a href="http://www.hystera.online" target="_blank" rel="noopener noreferrer" class="text-brand-pink hover:underline">www.hystera.online</a>.

**Allison Rich** is a director and advocate who created the powerful film 'Not Normal' to document her story of endo violence. You can watch her film on <a href="https://www.youtube.com/watch?v=fSDA0UzHsh0&t=345s" target="_blank" rel="noopener noreferrer" class="text-brand-pink hover:underline">YouTube</a>.

The collective is made up of many other talented members. To learn more about all contributors and find links to their individual profiles, please visit the official 'Meet Us' page: <a href="https://endoviolence.com/meet-us/" target="_blank" rel="noopener noreferrer" class="text-brand-pink hover:underline">endoviolence.com/meet-us/</a>.`

type cannedPayload struct {
	field string
	value string
}

var toolTable = map[ToolName]cannedPayload{
	ToolRecordUserInsight: {
		field: "result",
		value: "Insight successfully recorded. The user has been thanked for their contribution.",
	},
	ToolContributeToResearch: {
		field: "result",
		value: "Anonymous contribution successfully recorded. The user has been thanked and assured of their anonymity.",
	},
	ToolGetContributors: {
		field: "contributors",
		value: contributorsText,
	},
	ToolGetWebsiteResources: {
		field: "resources",
		value: "Resources like podcasts and events are available on the official website: www.endoviolence.com. Check the website for the latest updates.",
	},
}

// KnownTool reports whether name has a canned result.
func KnownTool(name string) bool {
	_, ok := toolTable[ToolName(name)]
	return ok
}

// Dispatch maps tool calls to canned results. Each recognized call replaces
// the results built so far, so only the last recognized call is answered.
// Unknown names are skipped. It returns nil when nothing was recognized.
func Dispatch(calls []domain.FunctionCallRequest) []domain.FunctionCallResult {
	var results []domain.FunctionCallResult
	for _, call := range calls {
		payload, ok := toolTable[ToolName(call.Name)]
		if !ok {
			continue
		}
		results = []domain.FunctionCallResult{{
			Name:    call.Name,
			Payload: map[string]string{payload.field: payload.value},
		}}
	}
	return results
}
