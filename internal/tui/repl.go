package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/store"
)

const replPrompt = "Type a message (type exit to leave): "

// Answerer turns a user message into a reply.
type Answerer interface {
	Answer(input string) string
}

// RunREPL reads messages from in and writes replies to out until "exit" or
// end of input. transcripts may be nil.
func RunREPL(ctx context.Context, in io.Reader, out io.Writer, name string, answerer Answerer, transcripts store.TranscriptStore) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n"+userStyle.Render(replPrompt))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if isExit(input) {
			return nil
		}

		reply := answerer.Answer(input)
		fmt.Fprintln(out, botStyle.Render(name+": ")+botStyle.Render(reply))
		saveExchange(ctx, transcripts, input, reply)
	}
}

func isExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "exit")
}

func saveExchange(ctx context.Context, transcripts store.TranscriptStore, input, reply string) {
	if transcripts == nil {
		return
	}
	if err := transcripts.SaveExchange(ctx, input, reply); err != nil {
		logger.WarnOnce("transcript", "failed to save exchange: %v", err)
	}
}
