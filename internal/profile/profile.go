// Package profile describes how the assistant is configured on the remote
// model: persona, backing models and declared tools.
package profile

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/set-night/endoally/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Profile struct {
	Name              string `yaml:"name"`
	SystemInstruction string `yaml:"system_instruction"`
	ThinkingNote      string `yaml:"thinking_note"`
	StandardNote      string `yaml:"standard_note"`
	GoogleSearch      bool   `yaml:"google_search"`
	Models            struct {
		Standard Model `yaml:"standard"`
		Thinking Model `yaml:"thinking"`
	} `yaml:"models"`
	Tools []Tool `yaml:"tools"`
}

// Model is a backing model with its prices per 1M tokens.
type Model struct {
	Name            string  `yaml:"name"`
	ThinkingBudget  int32   `yaml:"thinking_budget"`
	PromptPrice     float64 `yaml:"prompt_price"`
	CompletionPrice float64 `yaml:"completion_price"`
}

type Tool struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Default returns the embedded profile.
func Default() (*Profile, error) {
	return Parse(defaultYAML)
}

// Load reads a profile from path, or the embedded one when path is empty.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.SystemInstruction) == "" {
		return fmt.Errorf("%w: system_instruction is empty", domain.ErrProfileInvalid)
	}
	if p.Models.Standard.Name == "" || p.Models.Thinking.Name == "" {
		return fmt.Errorf("%w: both standard and thinking models are required", domain.ErrProfileInvalid)
	}
	seen := make(map[string]bool, len(p.Tools))
	for _, t := range p.Tools {
		if t.Name == "" {
			return fmt.Errorf("%w: tool without a name", domain.ErrProfileInvalid)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate tool %q", domain.ErrProfileInvalid, t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// Model picks the backing model for the given mode.
func (p *Profile) Model(thinking bool) Model {
	if thinking {
		return p.Models.Thinking
	}
	return p.Models.Standard
}

// Instruction is the system instruction for the given mode, including the
// note about which mode is active.
func (p *Profile) Instruction(thinking bool) string {
	note := p.StandardNote
	if thinking {
		note = p.ThinkingNote
	}
	base := strings.TrimSpace(p.SystemInstruction)
	if note = strings.TrimSpace(note); note == "" {
		return base
	}
	return base + "\n\n" + note
}
