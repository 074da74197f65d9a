// Command pfx-editor is a runnable demonstration of promptfx wiring
// three component shapes over the same terminal session: a fast
// Sync-shaped text editor, a slow Loading-shaped uppercasing "heavy"
// component replaying the same edits, and an Evaluator-shaped filtered
// search box over a small static corpus.
//
// Type to edit, arrows to move the cursor, Backspace to erase,
// Ctrl+A/Ctrl+E to jump to line start/end, Ctrl+U to clear. Esc quits.
package main

import (
	"fmt"
	"os"

	"github.com/flinq/pfx/cellfx"
	"github.com/flinq/pfx/compfx"
	"github.com/flinq/pfx/diagx"
	"github.com/flinq/pfx/examplefx"
	"github.com/flinq/pfx/promptfx"
	"github.com/flinq/pfx/terminal"
)

func main() {
	width, _, err := terminal.GetStdoutSize()
	if err != nil {
		width = 80
	}

	editorState := examplefx.NewEditorState()
	sync := compfx.NewSyncComponent[examplefx.EditorState](&editorState, examplefx.EditHandler, width, 1)

	heavySnap := cellfx.New(examplefx.NewEditorState())
	loading := compfx.NewLoadingComponent(heavySnap, examplefx.HeavyProcessor, width, 1)

	corpus := []string{"orchestrator", "debouncer", "snapshot", "evaluator", "terminal", "signal handler"}
	search := examplefx.NewSearchComponent(corpus, width, 1)

	err = promptfx.New().
		Components(sync, loading, search).
		Run()
	if err != nil {
		diagx.Default().Error().Err(err).Msg("session ended with error")
		fmt.Fprintln(os.Stderr, "pfx-editor:", err)
		os.Exit(1)
	}
}
