package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"aspkit/internal/driver"
	"aspkit/internal/source"
	"aspkit/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.ParseResult
	err     error
}

// runCheckWithUI runs driver.Check while a Bubble Tea view renders its
// progress events.
func runCheckWithUI(ctx context.Context, root string, opts driver.Options) (*source.FileSet, []driver.ParseResult, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = driver.DefaultExtensions
	}
	files, err := driver.ListFiles(root, exts)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChanSink(events)
		fs, res, err := driver.Check(ctx, root, o)
		outcomeCh <- checkOutcome{fileSet: fs, results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("aspkit diag "+root, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// вид мог закрыться раньше: дочитываем события, чтобы не блокировать воркеры
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
