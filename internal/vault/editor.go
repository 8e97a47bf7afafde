package vault

import (
	"os/exec"
	"strings"

	"github.com/aidanlsb/fieldmenu/internal/shellquote"
)

// EditorCommand returns the command that opens f in editor. An editor with
// arguments, such as "code -w" or "open -a Typora", runs through sh -c.
func EditorCommand(editor string, f File) *exec.Cmd {
	editor = strings.TrimSpace(editor)
	if strings.ContainsAny(editor, " \t") {
		return exec.Command("sh", "-c", editor+" "+shellquote.Quote(f.AbsPath))
	}
	return exec.Command(editor, f.AbsPath)
}
