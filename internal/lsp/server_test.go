package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasmwerner/harper/internal/engine"
	"github.com/lukasmwerner/harper/internal/testutil"
	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/dialect"
)

const testURI = "file:///notes/draft.md"

// session builds the framed input stream of a client.
type session struct {
	buf    bytes.Buffer
	nextID int
}

func (c *session) send(t *testing.T, method string, params any, request bool) {
	t.Helper()
	msg := map[string]any{"jsonrpc": "2.0", "method": method}
	if params != nil {
		msg["params"] = params
	}
	if request {
		c.nextID++
		msg["id"] = c.nextID
	}
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	fmt.Fprintf(&c.buf, "Content-Length: %d\r\n\r\n%s", len(body), body)
}

func (c *session) request(t *testing.T, method string, params any) {
	t.Helper()
	c.send(t, method, params, true)
}

func (c *session) notify(t *testing.T, method string, params any) {
	t.Helper()
	c.send(t, method, params, false)
}

// readMessages parses every framed message the server wrote.
func readMessages(t *testing.T, out []byte) []JSONRPCMessage {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(out))
	var msgs []JSONRPCMessage
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return msgs
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:")))
		require.NoError(t, err)
		_, err = r.ReadString('\n')
		require.NoError(t, err)

		body := make([]byte, n)
		_, err = io.ReadFull(r, body)
		require.NoError(t, err)

		var msg JSONRPCMessage
		require.NoError(t, json.Unmarshal(body, &msg))
		msgs = append(msgs, msg)
	}
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(context.Background(), engine.Config{
		Dialect: dialect.American,
		Lint:    core.LintConfig{Dedup: true},
		Logger:  testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func run(t *testing.T, linter Linter, c *session) ([]JSONRPCMessage, error) {
	t.Helper()
	var out bytes.Buffer
	s := NewServerWithLogger(&c.buf, &out, linter, testutil.NewTestLogger(t))
	err := s.Run(context.Background())
	return readMessages(t, out.Bytes()), err
}

func byMethod(msgs []JSONRPCMessage, method string) []JSONRPCMessage {
	var out []JSONRPCMessage
	for _, m := range msgs {
		if m.Method == method {
			out = append(out, m)
		}
	}
	return out
}

func byID(t *testing.T, msgs []JSONRPCMessage, id int) JSONRPCMessage {
	t.Helper()
	for _, m := range msgs {
		if m.ID != nil && string(*m.ID) == strconv.Itoa(id) {
			return m
		}
	}
	t.Fatalf("no response with id %d", id)
	return JSONRPCMessage{}
}

func openDoc(text string, version int) DidOpenTextDocumentParams {
	return DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI: testURI, LanguageID: "markdown", Version: version, Text: text,
	}}
}

func TestServer_Lifecycle(t *testing.T) {
	c := &session{}
	c.request(t, "initialize", InitializeParams{RootURI: "file:///notes"})
	c.notify(t, "initialized", struct{}{})
	c.request(t, "textDocument/hover", struct{}{})
	c.request(t, "shutdown", nil)
	c.request(t, "textDocument/codeAction", struct{}{})
	c.notify(t, "exit", nil)

	msgs, err := run(t, newTestEngine(t), c)
	require.NoError(t, err)

	var init InitializeResult
	require.NoError(t, json.Unmarshal(byID(t, msgs, 1).Result, &init))
	require.NotNil(t, init.Capabilities.TextDocumentSync)
	assert.Equal(t, TextDocumentSyncKindFull, init.Capabilities.TextDocumentSync.Change)
	assert.Equal(t, []CodeActionKind{CodeActionKindQuickFix}, init.Capabilities.CodeActionProvider.CodeActionKinds)
	assert.Equal(t, "harper", init.ServerInfo.Name)

	unknown := byID(t, msgs, 2)
	require.NotNil(t, unknown.Error)
	assert.Equal(t, codeMethodNotFound, unknown.Error.Code)

	shutdown := byID(t, msgs, 3)
	assert.Nil(t, shutdown.Error)

	afterShutdown := byID(t, msgs, 4)
	require.NotNil(t, afterShutdown.Error)
	assert.Equal(t, codeInvalidRequest, afterShutdown.Error.Code)
}

func TestServer_ExitWithoutShutdown(t *testing.T) {
	c := &session{}
	c.request(t, "initialize", struct{}{})
	c.notify(t, "exit", nil)

	_, err := run(t, newTestEngine(t), c)
	assert.ErrorIs(t, err, ErrExitWithoutShutdown)
}

func TestServer_EOFEndsRun(t *testing.T) {
	c := &session{}
	c.request(t, "initialize", struct{}{})

	msgs, err := run(t, newTestEngine(t), c)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestServer_PublishesDiagnostics(t *testing.T) {
	c := &session{}
	c.request(t, "initialize", struct{}{})
	c.notify(t, "textDocument/didOpen", openDoc("The the cat sat.", 1))
	c.notify(t, "textDocument/didChange", DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{TextDocumentIdentifier{URI: testURI}, 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "The cat sat."}},
	})
	c.notify(t, "textDocument/didClose", DidCloseTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: testURI}})

	msgs, err := run(t, newTestEngine(t), c)
	require.NoError(t, err)

	published := byMethod(msgs, "textDocument/publishDiagnostics")
	require.Len(t, published, 3)

	var first PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(published[0].Params, &first))
	assert.Equal(t, testURI, first.URI)
	require.NotNil(t, first.Version)
	assert.Equal(t, 1, *first.Version)
	require.Len(t, first.Diagnostics, 1)

	d := first.Diagnostics[0]
	assert.Equal(t, "RepeatedWords", d.Code)
	assert.Equal(t, diagnosticSource, d.Source)
	assert.Equal(t, Range{Start: Position{Character: 4}, End: Position{Character: 7}}, d.Range)
	assert.NotEmpty(t, d.Message)

	for _, m := range published[1:] {
		var p PublishDiagnosticsParams
		require.NoError(t, json.Unmarshal(m.Params, &p))
		assert.Empty(t, p.Diagnostics)
		assert.NotNil(t, p.Diagnostics, "cleared diagnostics are an empty array")
	}
}

func TestServer_DidSaveWithText(t *testing.T) {
	c := &session{}
	c.notify(t, "textDocument/didOpen", openDoc("Fine text.", 1))
	text := "I saw the the cat."
	c.notify(t, "textDocument/didSave", DidSaveTextDocumentParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Text:         &text,
	})

	msgs, err := run(t, newTestEngine(t), c)
	require.NoError(t, err)

	published := byMethod(msgs, "textDocument/publishDiagnostics")
	require.Len(t, published, 2)
	var p PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(published[1].Params, &p))
	require.Len(t, p.Diagnostics, 1)
	assert.Equal(t, "RepeatedWords", p.Diagnostics[0].Code)
}

func TestServer_CodeAction(t *testing.T) {
	c := &session{}
	c.notify(t, "textDocument/didOpen", openDoc("The the cat sat.", 1))
	c.request(t, "textDocument/codeAction", CodeActionParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Range:        Range{Start: Position{Character: 5}, End: Position{Character: 5}},
	})
	c.request(t, "textDocument/codeAction", CodeActionParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Range:        Range{Start: Position{Character: 10}, End: Position{Character: 12}},
	})
	c.request(t, "textDocument/codeAction", CodeActionParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Range:        Range{End: Position{Character: 16}},
		Context:      CodeActionContext{Only: []CodeActionKind{"refactor"}},
	})

	msgs, err := run(t, newTestEngine(t), c)
	require.NoError(t, err)

	var actions []CodeAction
	require.NoError(t, json.Unmarshal(byID(t, msgs, 1).Result, &actions))
	require.NotEmpty(t, actions)
	a := actions[0]
	assert.Equal(t, CodeActionKindQuickFix, a.Kind)
	require.Len(t, a.Diagnostics, 1)
	assert.Equal(t, "RepeatedWords", a.Diagnostics[0].Code)
	require.NotNil(t, a.Edit)
	edits := a.Edit.Changes[testURI]
	require.Len(t, edits, 1)
	assert.Equal(t, Range{Start: Position{Character: 4}, End: Position{Character: 7}}, edits[0].Range)

	for _, id := range []int{2, 3} {
		var none []CodeAction
		require.NoError(t, json.Unmarshal(byID(t, msgs, id).Result, &none))
		assert.Empty(t, none, "request %d", id)
	}
}

type failingLinter struct{}

func (failingLinter) LintFileText(context.Context, string, string) (engine.Result, error) {
	return engine.Result{}, errors.New("engine closed")
}

func TestServer_LintFailureShowsMessage(t *testing.T) {
	c := &session{}
	c.notify(t, "textDocument/didOpen", openDoc("anything", 1))

	msgs, err := run(t, failingLinter{}, c)
	require.NoError(t, err)

	assert.Empty(t, byMethod(msgs, "textDocument/publishDiagnostics"))
	shown := byMethod(msgs, "window/showMessage")
	require.Len(t, shown, 1)

	var p ShowMessageParams
	require.NoError(t, json.Unmarshal(shown[0].Params, &p))
	assert.Equal(t, MessageTypeError, p.Type)
	assert.Contains(t, p.Message, "engine closed")
}

func TestServer_MalformedMessage(t *testing.T) {
	c := &session{}
	c.buf.WriteString("Content-Length: 5\r\n\r\n{oops")
	c.request(t, "initialize", struct{}{})

	msgs, err := run(t, newTestEngine(t), c)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.NotNil(t, msgs[0].Error)
	assert.Equal(t, codeParseError, msgs[0].Error.Code)
	assert.Nil(t, byID(t, msgs, 1).Error)
}
