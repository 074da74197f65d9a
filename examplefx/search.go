package examplefx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/cellfx"
	"github.com/flinq/pfx/compfx"
	"github.com/flinq/pfx/debouncefx"
	"github.com/flinq/pfx/evfx"
	"github.com/flinq/pfx/promptfx"
)

// SearchState is the filtered-search demo's domain state: an embedded
// EditorState for the query box, plus the corpus it searches and the
// last committed set of matches.
type SearchState struct {
	EditorState
	Corpus  []string
	Matches []string
}

// NewSearchState returns an empty query box searching corpus.
func NewSearchState(corpus []string) SearchState {
	return SearchState{EditorState: NewEditorState(), Corpus: corpus}
}

// Clone returns a deep copy, satisfying cellfx.Cloner.
func (s SearchState) Clone() SearchState {
	return SearchState{
		EditorState: s.EditorState.Clone(),
		Corpus:      s.Corpus,
		Matches:     append([]string(nil), s.Matches...),
	}
}

// SearchEventsProcessor is the Evaluator's events-track Processor: it
// applies the same EditHandler the fast editor demo uses to keep the
// query box responsive while typing, well before the debounced query
// below ever fires a search.
func SearchEventsProcessor(ctx context.Context, width, height int, batch []evfx.EventGroup, cell cellfx.Cell[SearchState]) (pfx.Pane, error) {
	next := cell.Current()
	_ = EditHandler(batch, &next.EditorState)
	cell.Update(next)
	return SummaryPane("typing", next.EditorState), nil
}

// asyncModifier is satisfied by *cellfx.AsyncSnapshot; SearchQueryProcessor
// type-asserts for it so a ctx-aware cell gets its suspending search
// folded into one Modify call instead of a separate Current/Update pair.
type asyncModifier[S cellfx.Cloner[S]] interface {
	Modify(ctx context.Context, fn func(context.Context, S) (S, any, error)) (any, error)
}

// SearchQueryProcessor is the Evaluator's query-track QueryProcessor: it
// filters the corpus for query, behind an artificial delay standing in
// for a real (network, disk) search.
func SearchQueryProcessor(ctx context.Context, width, height int, query string, cell cellfx.Cell[SearchState]) (pfx.Pane, error) {
	run := func(ctx context.Context, s SearchState) (SearchState, any, error) {
		select {
		case <-time.After(150 * time.Millisecond):
		case <-ctx.Done():
			return s, nil, ctx.Err()
		}
		s.Matches = filterCorpus(s.Corpus, query)
		return s, nil, nil
	}

	if am, ok := cell.(asyncModifier[SearchState]); ok {
		if _, err := am.Modify(ctx, run); err != nil {
			return nil, err
		}
	} else {
		next, _, err := run(ctx, cell.Current())
		if err != nil {
			return nil, err
		}
		cell.Update(next)
	}

	return renderMatches(query, cell.Current().Matches), nil
}

func filterCorpus(corpus []string, query string) []string {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	var out []string
	for _, c := range corpus {
		if strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

func renderMatches(query string, matches []string) pfx.Pane {
	if len(matches) == 0 {
		return pfx.RawPane(fmt.Sprintf("search %q: no matches", query))
	}
	return pfx.RawPane(fmt.Sprintf("search %q: %s", query, strings.Join(matches, ", ")))
}

// NewSearchComponent wires an EvaluatorComponent over an AsyncSnapshot
// into a promptfx.Component: every incoming batch both feeds the fast
// events track directly and, replayed against a local query-box echo,
// derives the text debounced into the slower query track. Replaying the
// batch rather than reading the events track's own cell keeps the two
// tracks independent, the same way the heavy-component demo replays
// batches instead of sharing state with its sibling.
func NewSearchComponent(corpus []string, width, height int) promptfx.Component {
	cell := cellfx.NewAsync(NewSearchState(corpus))
	eval := compfx.NewEvaluatorComponent[SearchState](cell, SearchEventsProcessor, SearchQueryProcessor, width, height)

	return promptfx.ComponentFunc(func(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error {
		rawQuery := make(chan string)
		queries := debouncefx.StartWith(ctx, rawQuery, debouncefx.WithDelay(150*time.Millisecond))
		tapped := make(chan []evfx.EventGroup)

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			defer close(tapped)
			defer close(rawQuery)
			var echo EditorState
			for {
				select {
				case <-gctx.Done():
					return nil
				case batch, ok := <-in:
					if !ok {
						return nil
					}
					_ = EditHandler(batch, &echo)
					select {
					case rawQuery <- string(echo.Text):
					case <-gctx.Done():
						return nil
					}
					select {
					case tapped <- batch:
					case <-gctx.Done():
						return nil
					}
				}
			}
		})

		g.Go(func() error { return promptfx.EvaluatorAdapter[SearchState](eval, queries).Run(gctx, tapped, out) })

		return g.Wait()
	})
}
