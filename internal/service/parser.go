package service

import (
	"regexp"
	"strings"

	"github.com/set-night/endoally/internal/domain"
)

// AudioSummaryURL is served for every audio marker. The marker's id does not
// select between recordings.
const AudioSummaryURL = "https://drive.google.com/uc?export=download&id=1AmXN3wDvSX6e9ckkyPysmMjcDTuqSE1q"

const untitledCitation = "Untitled"

var audioMarker = regexp.MustCompile(`\[AUDIO: (.*?)\|(.*?)\]\n?`)

// ParseBody strips the first audio marker from raw and returns the cleaned text
// with the audio reference it described. Later markers are left in the text.
func ParseBody(raw string) (string, *domain.AudioRef) {
	loc := audioMarker.FindStringSubmatchIndex(raw)
	if loc == nil {
		return strings.TrimSpace(raw), nil
	}

	audio := &domain.AudioRef{
		URL:     AudioSummaryURL,
		Caption: raw[loc[4]:loc[5]],
	}
	cleaned := raw[:loc[0]] + raw[loc[1]:]
	return strings.TrimSpace(cleaned), audio
}

// ParseCitations turns grounding metadata into citations. It returns nil when
// there is no chunk list and an empty slice when every chunk was filtered out.
func ParseCitations(meta *domain.GroundingMetadata) []domain.Citation {
	if meta == nil || meta.Chunks == nil {
		return nil
	}

	citations := make([]domain.Citation, 0, len(meta.Chunks))
	for _, chunk := range meta.Chunks {
		c := domain.Citation{Title: untitledCitation}
		if chunk.Web != nil {
			if chunk.Web.URI != nil {
				c.URI = *chunk.Web.URI
			}
			if chunk.Web.Title != nil {
				c.Title = *chunk.Web.Title
			}
		}
		if c.URI == "" {
			continue
		}
		citations = append(citations, c)
	}
	return citations
}
