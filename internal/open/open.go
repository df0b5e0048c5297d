package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
)

// Target names a message worth jumping to in the original export.
type Target string

const (
	TargetTop          Target = "top"
	TargetLongest      Target = "longest"
	TargetManipulation Target = "manipulation"
	TargetLove         Target = "love"
	TargetApology      Target = "apology"
)

// ErrNoLine is returned when the analysis has no message for the target.
var ErrNoLine = errors.New("no message for target")

// Line finds the export line of the requested message. For the per
// participant targets the first participant with a match wins.
func Line(stats *analyze.ChatStats, target Target) (int, error) {
	switch target {
	case TargetTop, "":
		return 1, nil
	case TargetLongest:
		if stats.LongestMessage != nil && stats.LongestMessage.Line > 0 {
			return stats.LongestMessage.Line, nil
		}
	case TargetManipulation, TargetLove, TargetApology:
		for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
			if line := firstLine(pair.Value, target); line > 0 {
				return line, nil
			}
		}
	default:
		return 0, fmt.Errorf("unknown target %q", target)
	}
	return 0, fmt.Errorf("%s: %w", target, ErrNoLine)
}

func firstLine(p *analyze.ParticipantStats, target Target) int {
	switch target {
	case TargetManipulation:
		if len(p.Manipulation.Examples) > 0 {
			return p.Manipulation.Examples[0].Line
		}
	case TargetLove:
		if len(p.LoveExpressions.Examples) > 0 {
			return p.LoveExpressions.Examples[0].Line
		}
	case TargetApology:
		if len(p.Apologies.Examples) > 0 {
			return p.Apologies.Examples[0].Line
		}
	}
	return 0
}

// Export opens a plain-text export in $EDITOR (less if unset) at lineNum.
func Export(filePath string, lineNum int) error {
	if strings.EqualFold(filepath.Ext(filePath), ".zip") {
		return fmt.Errorf("%s: cannot open a zip export at a line, extract the chat first", filePath)
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, filePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	if lineNum < 1 {
		lineNum = 1
	}
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
