// Package tui connects the gauge to a bubbletea program.
//
// The bubbletea program is only the terminal: it reads raw input, keeps the
// alt screen and draws frames. All application logic lives in the render
// loop, which this package talks to in both directions:
//   - key presses become event.Input values pushed onto the event queue
//   - every state the loop draws arrives back as a StateMsg
//
// Usage:
//
//	q := event.NewQueue()
//	app := tui.NewGaugeApp(renderer, q, state.New(0), 80, 24)
//	input := tui.WatchInput(os.Stdin, func(err error) { cancel() })
//	program := tui.NewGaugeProgram(app, tea.WithInput(input))
//	go program.Run()
//
//	loop.Run(ctx, state.New(0), loop.Options{
//	    Queue:    q,
//	    Keys:     state.DefaultKeys(),
//	    Renderer: tui.LoopRenderer(ctx, program),
//	})
//	program.Quit()
//
// If the queue is closed when a key arrives the program quits on its own,
// so the terminal is always handed back. WatchInput covers the other
// direction: when input ends the loop is told through cancel.
package tui
