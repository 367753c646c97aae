package corpus

import (
	_ "embed"
	"strings"
)

const (
	// EndOfTurn separates dialogues in a corpus and stops generation.
	EndOfTurn = "<|endoftext|>"

	UserSpeaker = "user"
	AISpeaker   = "ai"
)

//go:embed data/dialogue.txt
var defaultCorpus string

// Default returns the dialogue corpus bundled with the binary.
func Default() string {
	return defaultCorpus
}

// Prompt builds the conversation prompt the generator extends.
func Prompt(input string) string {
	return UserSpeaker + ": " + input + "\n" + AISpeaker + ": "
}

// Turn is one speaker-tagged line of a dialogue.
type Turn struct {
	Speaker string
	Text    string
}

// Dialogue is one sentinel-delimited block of a corpus.
type Dialogue struct {
	Turns []Turn
}

func (d Dialogue) String() string {
	lines := make([]string, 0, len(d.Turns))
	for _, t := range d.Turns {
		if t.Speaker == "" {
			lines = append(lines, t.Text)
			continue
		}
		lines = append(lines, t.Speaker+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}

// Parse splits corpus text into dialogues. Lines without a "speaker:" tag are
// folded into the previous turn, or kept untagged when no turn is open yet.
// Blank blocks between sentinels are dropped.
func Parse(text string) []Dialogue {
	var dialogues []Dialogue
	for _, block := range strings.Split(text, EndOfTurn) {
		var d Dialogue
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if speaker, rest, ok := splitSpeaker(line); ok {
				d.Turns = append(d.Turns, Turn{Speaker: speaker, Text: rest})
				continue
			}
			if n := len(d.Turns); n > 0 {
				d.Turns[n-1].Text += "\n" + line
			} else {
				d.Turns = append(d.Turns, Turn{Text: line})
			}
		}
		if len(d.Turns) > 0 {
			dialogues = append(dialogues, d)
		}
	}
	return dialogues
}

// Split cuts corpus text into its sentinel-delimited blocks, verbatim.
// Blank blocks are kept so that Join(Split(text)) == text.
func Split(text string) []string {
	return strings.Split(text, EndOfTurn)
}

// Join is the inverse of Split.
func Join(blocks []string) string {
	return strings.Join(blocks, EndOfTurn)
}

func splitSpeaker(line string) (string, string, bool) {
	speaker, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	speaker = strings.ToLower(strings.TrimSpace(speaker))
	if speaker != UserSpeaker && speaker != AISpeaker {
		return "", "", false
	}
	return speaker, strings.TrimSpace(rest), true
}

// Stats summarises a parsed corpus.
type Stats struct {
	Dialogues int
	Turns     map[string]int
}

func Summarize(dialogues []Dialogue) Stats {
	s := Stats{Dialogues: len(dialogues), Turns: make(map[string]int)}
	for _, d := range dialogues {
		for _, t := range d.Turns {
			speaker := t.Speaker
			if speaker == "" {
				speaker = "untagged"
			}
			s.Turns[speaker]++
		}
	}
	return s
}
