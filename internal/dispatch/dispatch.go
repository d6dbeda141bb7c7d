// Package dispatch implements the line-oriented request boundary in front
// of an engine.Store: tokenizing a request line, routing it to Set/Get/Del,
// and rendering the result back to reply bytes. Both transports in cmd/kvd
// (stdin and TCP) share the single Handler defined here.
//
// Ported from original_source/src/server.rs's Server::dispatch_request and
// its handle_get/handle_set/handle_del arity checks, and
// original_source/src/model.rs::parse_command_from_string for tokenizing.
package dispatch

import (
	"strings"

	"github.com/iamNilotpal/kvd/internal/engine"
	"github.com/iamNilotpal/kvd/pkg/errors"
)

// Tokenize splits a request line on runs of ASCII space, dropping empty
// tokens. There is no escaping: a key or value containing a space is not
// addressable through this surface.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool { return r == ' ' })
}

// Handler binds a dispatcher to a concrete store. It is safe for concurrent
// use by multiple transport goroutines only insofar as the underlying Store
// is — engine.Engine serializes internally, so a Handler wrapping one is
// safe to share across TCP connections.
type Handler struct {
	store engine.Store
}

// NewHandler builds a Handler over store.
func NewHandler(store engine.Store) *Handler {
	return &Handler{store: store}
}

// Dispatch routes a single already-tokenized request to the matching
// operation and returns the reply bytes. The reply is empty for a
// successful set/del, the value bytes for a get hit, and empty for a get
// miss; any error is an *errors.EngineError (InvalidRequest) or whatever
// the underlying store returned.
func (h *Handler) Dispatch(tokens []string) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, invalidRequest("empty request")
	}

	switch tokens[0] {
	case "get":
		return h.handleGet(tokens)
	case "set":
		return h.handleSet(tokens)
	case "del":
		return h.handleDel(tokens)
	default:
		return nil, invalidRequest("unknown command: " + tokens[0])
	}
}

func (h *Handler) handleGet(tokens []string) ([]byte, error) {
	if len(tokens) != 2 {
		return nil, invalidRequest("get requires exactly 1 argument")
	}

	value, err := h.store.Get([]byte(tokens[1]))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []byte{}, nil
	}
	return value, nil
}

func (h *Handler) handleSet(tokens []string) ([]byte, error) {
	if len(tokens) != 3 {
		return nil, invalidRequest("set requires exactly 2 arguments")
	}

	if err := h.store.Set([]byte(tokens[1]), []byte(tokens[2])); err != nil {
		return nil, err
	}
	return []byte{}, nil
}

func (h *Handler) handleDel(tokens []string) ([]byte, error) {
	if len(tokens) != 2 {
		return nil, invalidRequest("del requires exactly 1 argument")
	}

	if err := h.store.Del([]byte(tokens[1])); err != nil {
		return nil, err
	}
	return []byte{}, nil
}

func invalidRequest(msg string) error {
	return errors.NewEngineError(nil, errors.ErrorCodeInvalidRequest, msg).WithOperation("Dispatch")
}
