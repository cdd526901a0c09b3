package grounding

import (
	"encoding/json"
	"fmt"
	"os"
)

// Speaker identifies who produced a conversation turn, using the wire
// values of the persisted schema.
type Speaker string

const (
	// SpeakerHuman is the prompting side of a turn pair.
	SpeakerHuman Speaker = "human"

	// SpeakerAssistant is the model side; only assistant turns may embed
	// grounding annotations.
	SpeakerAssistant Speaker = "gpt"
)

// Turn attributes used by annotation tools to tag what a turn pair was
// elicited for. The field is optional and passed through verbatim.
const (
	AttributeGrounding        = "Grounding"
	AttributeRegionCaptioning = "Region Captioning"
	AttributeImageCaptioning  = "Image Captioning"
)

// Turn is a single conversation turn.
type Turn struct {
	From      Speaker `json:"from"`
	Value     string  `json:"value"`
	Attribute string  `json:"attribute,omitempty"`
}

// Conversation is one persisted conversation record: an image reference
// and an ordered turn sequence. Coordinates embedded in turn values are
// always normalized to [0, 1].
type Conversation struct {
	Image string `json:"image"`
	Task  string `json:"task,omitempty"`
	Turns []Turn `json:"conversations"`
}

// Annotations decodes every assistant turn and returns all recovered
// annotations in turn order, along with the accumulated warnings.
func (c Conversation) Annotations() ([]Annotation, []Warning) {
	var (
		anns  []Annotation
		warns []Warning
	)
	for _, t := range c.Turns {
		if t.From != SpeakerAssistant {
			continue
		}
		a, w := Decode(t.Value)
		anns = append(anns, a...)
		warns = append(warns, w...)
	}
	return anns, warns
}

// HasGrounding reports whether any assistant turn decodes to at least
// one annotation.
func (c Conversation) HasGrounding() bool {
	for _, t := range c.Turns {
		if t.From != SpeakerAssistant {
			continue
		}
		if anns, _ := Decode(t.Value); len(anns) > 0 {
			return true
		}
	}
	return false
}

// Classify partitions conversations into those carrying grounding
// annotations and pure-text ones. Both outputs are subsequences of the
// input preserving its order; conversation content is never rewritten.
func Classify(convs []Conversation) (grounding, pureText []Conversation) {
	for _, c := range convs {
		if c.HasGrounding() {
			grounding = append(grounding, c)
		} else {
			pureText = append(pureText, c)
		}
	}
	return grounding, pureText
}

// Stats summarizes the turn mix of one conversation record.
type Stats struct {
	Turns       int // total turns
	Grounding   int // assistant turns with at least one annotation
	PureText    int // assistant turns without annotations
	Annotations int // total annotations across assistant turns
}

// Analyze counts grounding and pure-text assistant turns and the total
// annotations they carry.
func Analyze(turns []Turn) Stats {
	s := Stats{Turns: len(turns)}
	for _, t := range turns {
		if t.From != SpeakerAssistant {
			continue
		}
		anns, _ := Decode(t.Value)
		if len(anns) > 0 {
			s.Grounding++
			s.Annotations += len(anns)
		} else {
			s.PureText++
		}
	}
	return s
}

// SeparateTurns splits a turn sequence into grounding and pure-text
// subsequences by human/assistant pairs: a human turn immediately
// followed by an assistant turn travels as a pair, landing in the
// grounding output when the assistant turn decodes to at least one
// annotation. Unpaired turns go to the text output. Relative order is
// preserved in both outputs.
func SeparateTurns(turns []Turn) (grounding, text []Turn) {
	i := 0
	for i < len(turns) {
		if i+1 < len(turns) &&
			turns[i].From == SpeakerHuman &&
			turns[i+1].From == SpeakerAssistant {
			pair := turns[i : i+2]
			if anns, _ := Decode(turns[i+1].Value); len(anns) > 0 {
				grounding = append(grounding, pair...)
			} else {
				text = append(text, pair...)
			}
			i += 2
			continue
		}
		text = append(text, turns[i])
		i++
	}
	return grounding, text
}

// validate checks the structural constraints of the persisted schema.
func (c *Conversation) validate() error {
	for i, t := range c.Turns {
		if t.From != SpeakerHuman && t.From != SpeakerAssistant {
			return fmt.Errorf("grounding: turn %d has invalid speaker %q", i, t.From)
		}
	}
	return nil
}

// Load reads one conversation record from a JSON file. A record with a
// speaker outside {"human", "gpt"} is rejected; malformed annotation
// text inside turn values is not an error here — it surfaces as decode
// warnings later.
func Load(path string) (*Conversation, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	var c Conversation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("grounding: parse %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the conversation record as indented JSON.
func (c *Conversation) Save(path string) error {
	if err := c.validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644) //nolint:gosec // annotation files are not secrets
}

// IsConversationFile reports whether the file parses as a conversation
// record: a JSON object with a conversations list whose entries all
// have valid from and value fields. Unreadable or malformed files
// report false.
func IsConversationFile(path string) bool {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return false
	}
	var probe struct {
		Conversations []map[string]json.RawMessage `json:"conversations"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.Conversations == nil {
		return false
	}
	for _, t := range probe.Conversations {
		var from string
		if raw, ok := t["from"]; !ok || json.Unmarshal(raw, &from) != nil {
			return false
		} else if from != string(SpeakerHuman) && from != string(SpeakerAssistant) {
			return false
		}
		if _, ok := t["value"]; !ok {
			return false
		}
	}
	return true
}
