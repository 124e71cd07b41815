// Package server exposes an Engine over HTTP.
//
//	GET /check?type=int|null&value=42&cast=true
//	GET /compile?type=list<int>&format=go
//
// Values are JSON text. Responses use the {"result": ...} and
// {"error": {"code", "message", "details"}} envelopes.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/broady/valtype"
	"github.com/broady/valtype/compiler"
	"github.com/broady/valtype/internal/jsonvalue"
	"github.com/broady/valtype/types"
)

var (
	schemaDecoder = schema.NewDecoder()
	validate      = validator.New()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// CheckRequest is the query of GET /check.
type CheckRequest struct {
	Type  string `schema:"type" validate:"required,max=4096"`
	Value string `schema:"value" validate:"required"`
	Cast  bool   `schema:"cast"`
}

// CheckResult is the result of GET /check.
type CheckResult struct {
	Type     string `json:"type"`
	Accepted bool   `json:"accepted"`
	Value    any    `json:"value,omitempty"`
}

// CompileRequest is the query of GET /compile.
type CompileRequest struct {
	Type   string `schema:"type" validate:"required,max=4096"`
	Format string `schema:"format" validate:"omitempty,oneof=program go"`
}

// CompileResult is the result of GET /compile.
type CompileResult struct {
	Signature string `json:"signature"`
	Format    string `json:"format"`
	Source    string `json:"source"`
}

// Server serves an Engine.
type Server struct {
	engine *valtype.Engine
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates a Server. A nil logger means slog.Default().
func New(engine *valtype.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: engine, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("/check", s.handleCheck)
	s.mux.HandleFunc("/compile", s.handleCompile)
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, types.Errorf(CodeNotFound, "no route for %s", r.URL.Path), s.logger)
	})
	return s
}

// Handler returns the server wrapped in its HTTP middleware.
func (s *Server) Handler(cors *CORSConfig) http.Handler {
	var h http.Handler = s
	if cors != nil {
		h = CORS(cors)(h)
	}
	return Logging(s.logger)(h)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// decode decodes and validates the query of a GET request into req.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Method != http.MethodGet {
		writeError(w, types.Errorf(CodeMethodNotAllowed, "method %s not allowed", r.Method), s.logger)
		return false
	}
	if err := schemaDecoder.Decode(req, r.URL.Query()); err != nil {
		writeError(w, types.Errorf(CodeInvalidArgument, "invalid query: %v", err), s.logger)
		return false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, transformError(err), s.logger)
		return false
	}
	return true
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !s.decode(w, r, &req) {
		return
	}
	value, err := jsonvalue.Decode(req.Value)
	if err != nil {
		writeError(w, transformError(err), s.logger)
		return
	}

	v, err := s.engine.Validator(r.Context(), req.Type)
	if err != nil {
		writeError(w, transformError(err), s.logger)
		return
	}
	result := CheckResult{Type: v.Signature()}
	if !req.Cast {
		result.Accepted = v.Accepts(value)
		writeResult(w, result, s.logger)
		return
	}

	out, err := v.Cast(value)
	if err != nil {
		writeError(w, transformError(err), s.logger)
		return
	}
	result.Accepted = true
	result.Value = jsonvalue.ForJSON(out)
	writeResult(w, result, s.logger)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req CompileRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Format == "" {
		req.Format = compiler.FormatProgram
	}
	a, err := s.engine.Compile(req.Type, req.Format)
	if err != nil {
		writeError(w, transformError(err), s.logger)
		return
	}
	writeResult(w, CompileResult{
		Signature: a.Signature,
		Format:    a.Format,
		Source:    string(a.Source),
	}, s.logger)
}
