// Package chatmd renders chat message text to HTML fragments that are safe
// to inject into a page.
//
// # Quick Start
//
// Render a message with the default chat engine:
//
//	html := chatmd.Render("**Note:** run `go test`\n\n- one\n- two")
//	// <p><strong>Note:</strong> run <code>go test</code></p>
//	// <ul>
//	// <li>one</li>
//	// <li>two</li>
//	// </ul>
//
// Render never fails and never returns markup it did not write itself:
// the input is escaped before any pass turns syntax into tags.
//
// # Rendering Pipeline
//
// The chat engine runs these passes in order over one working string:
//
//  1. Escape &, <, >, " and ' (line endings normalized)
//  2. Fenced code blocks to <pre><code class="language-x">
//  3. Inline code to <code>
//  4. Pipe tables to <table>
//  5. Headers (#, ##, ###), **bold**, *italic* and --- rules
//  6. Unordered and ordered list grouping
//  7. Paragraphs, <br> line breaks and indented pre-wrap blocks
//
// Code produced by passes 2 and 3 is set aside before pass 4 and restored
// after pass 7, so markdown characters inside code stay literal.
// WithLegacyScanning turns that off.
//
// # Configuration
//
// Use functional options to customize a Renderer:
//
//	r, err := chatmd.New(
//	    chatmd.WithHighlighting("github"),
//	    chatmd.WithVerify(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := r.Render(message)
//	css, _ := r.HighlightCSS()
//
// # Engines
//
// NewEngine selects between the chat engine and "commonmark", which renders
// GitHub flavored markdown through goldmark and sanitizes the result with a
// bluemonday allowlist:
//
//	eng, err := chatmd.NewEngine(chatmd.EngineCommonMark)
//	html, err := eng.RenderHTML(ctx, message)
//
// # Transcripts
//
// LoadTranscript reads a conversation (YAML or JSON) and RenderTranscript
// writes it as a standalone page, one section per question/answer pair:
//
//	conv, err := chatmd.LoadTranscript(data)
//	err = chatmd.RenderTranscript(ctx, w, conv, chatmd.TranscriptOptions{
//	    Filter:   "deploy",
//	    Location: time.UTC,
//	})
package chatmd
