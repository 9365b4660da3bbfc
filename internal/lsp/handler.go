package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tinyscript/internal/ast"
	"tinyscript/internal/parser"
	"tinyscript/token"
)

const Name = "tiny"

var Version = "0.1.0"

var log = commonlog.GetLogger("tiny.lsp")

// Semantic token legend advertised to the client
var SemanticTokenTypes = []string{
	"keyword",
	"type",
	"variable",
	"number",
	"string",
	"operator",
}

var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// TinyHandler implements the LSP server handlers for Tiny. Documents are
// keyed by URI and reparsed in full on every change.
type TinyHandler struct {
	mu      sync.RWMutex
	content map[string]string
	results map[string]*parser.ParseResult
}

func NewTinyHandler() *TinyHandler {
	return &TinyHandler{
		content: make(map[string]string),
		results: make(map[string]*parser.ParseResult),
	}
}

// Handler wires the methods into a glsp protocol handler.
func (h *TinyHandler) Handler() protocol.Handler {
	return protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

func (h *TinyHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	version := Version
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			HoverProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &version,
		},
	}, nil
}

func (h *TinyHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *TinyHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *TinyHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *TinyHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (h *TinyHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.RLock()
	text, ok := h.content[uri]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("change for unopened document %s", uri)
	}

	for _, change := range params.ContentChanges {
		var err error
		if text, err = applyChange(text, change); err != nil {
			return fmt.Errorf("failed to apply change to %s: %w", uri, err)
		}
	}

	h.update(ctx, uri, text)
	return nil
}

func (h *TinyHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	delete(h.results, params.TextDocument.URI)
	h.mu.Unlock()
	return nil
}

// TextDocumentCompletion offers every keyword plus the identifiers already
// present in the document. The client filters by prefix.
func (h *TinyHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	keywordKind := protocol.CompletionItemKindKeyword
	variableKind := protocol.CompletionItemKindVariable

	var items []protocol.CompletionItem
	for _, kw := range token.Keywords() {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &keywordKind})
	}

	h.mu.RLock()
	result := h.results[params.TextDocument.URI]
	h.mu.RUnlock()

	if result != nil {
		seen := make(map[string]bool)
		for _, tok := range result.Tokens {
			if tok.Kind == token.IDENTIFIER && !seen[tok.Lexeme] {
				seen[tok.Lexeme] = true
				items = append(items, protocol.CompletionItem{Label: tok.Lexeme, Kind: &variableKind})
			}
		}
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentHover shows the tree label of the literal or identifier under
// the cursor. Nothing is shown while the document fails to parse.
func (h *TinyHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	h.mu.RLock()
	text := h.content[params.TextDocument.URI]
	result := h.results[params.TextDocument.URI]
	h.mu.RUnlock()

	if result == nil || result.Program == nil {
		return nil, nil
	}
	offset, err := offsetOf(text, params.Position)
	if err != nil {
		return nil, nil
	}
	node := ast.FindTerminalAt(result.Program, offset)
	if node == nil {
		return nil, nil
	}

	starts := lineStarts(text)
	start := lspPosition(text, starts, node.Pos.Line, node.Pos.Offset)
	endLine := node.Pos.Line + strings.Count(node.Text, "\n")
	end := lspPosition(text, starts, endLine, node.Pos.Offset+len(node.Text))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("`%s`", node.Tag()),
		},
		Range: &protocol.Range{Start: start, End: end},
	}, nil
}

func (h *TinyHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := params.TextDocument.URI
	log.Debugf("semantic tokens for %s", uri)

	source, result, err := h.getOrLoad(ctx, uri)
	if err != nil {
		return nil, err
	}

	var data []uint32
	var prevLine, prevStart uint32

	// Delta encoding: each entry is relative to the previous token
	for _, tok := range collectSemanticTokens(source, result) {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// getOrLoad returns the open document, or reads and parses it from disk
// when the client asks about a file it never opened.
func (h *TinyHandler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (string, *parser.ParseResult, error) {
	h.mu.RLock()
	source, ok := h.content[uri]
	result := h.results[uri]
	h.mu.RUnlock()
	if ok {
		return source, result, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return "", nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	result = h.update(ctx, uri, string(content))
	return string(content), result, nil
}

// update reparses text, stores the result and publishes its diagnostics.
// An empty list is published on success so stale errors clear.
func (h *TinyHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) *parser.ParseResult {
	result := parser.ParseSourceWithTokens(text)

	h.mu.Lock()
	h.content[uri] = text
	h.results[uri] = result
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, ConvertParseResult(text, result))
	return result
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}

	path := u.Path

	// /C:/dir on Windows
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
