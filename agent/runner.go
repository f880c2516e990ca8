package agent

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-io/config"
	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/schema"
	"github.com/wippyai/cairo-io/transcoder"
)

// Request describes one run.
type Request struct {
	// Args is the JSON argument document. Blank means no arguments.
	Args        string
	Preprocess  bool
	Postprocess bool
}

// Runner ties the schema, the executor and the hooks together.
type Runner struct {
	executor       Executor
	schema         *schema.Schema
	client         *http.Client
	encoder        *transcoder.Encoder
	decoder        *transcoder.Decoder
	preprocessURL  string
	postprocessURL string
}

// Option configures a Runner.
type Option func(*Runner)

// WithHTTPClient sets the client used for hook calls.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Runner) { r.client = c }
}

// WithHooks overrides the pre/post-processing URLs.
func WithHooks(preprocessURL, postprocessURL string) Option {
	return func(r *Runner) {
		r.preprocessURL = preprocessURL
		r.postprocessURL = postprocessURL
	}
}

// WithManifest takes the hook URLs from a project manifest and the environment.
func WithManifest(m *config.Manifest) Option {
	return func(r *Runner) {
		r.preprocessURL = m.PreprocessURL()
		r.postprocessURL = m.PostprocessURL()
	}
}

func NewRunner(exec Executor, s *schema.Schema, opts ...Option) *Runner {
	r := &Runner{
		executor:       exec,
		schema:         s,
		client:         &http.Client{Timeout: 30 * time.Second},
		encoder:        transcoder.NewEncoder(),
		decoder:        transcoder.NewDecoder(),
		preprocessURL:  config.DefaultPreprocessURL,
		postprocessURL: config.DefaultPostprocessURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run encodes the arguments, executes the program and decodes its return
// value to compact JSON text. A program panic is returned as *PanicError.
func (r *Runner) Run(ctx context.Context, req Request) (string, error) {
	args, err := r.arguments(ctx, req)
	if err != nil {
		return "", err
	}

	exec, err := r.executor.Execute(ctx, args)
	if err != nil {
		return "", err
	}

	output, err := r.decode(exec)
	if err != nil {
		return "", err
	}

	if !req.Postprocess {
		return output, nil
	}
	requestID := uuid.New().String()
	Logger().Debug("postprocessing result",
		zap.String("url", r.postprocessURL),
		zap.String("request_id", requestID))
	return postprocess(ctx, r.client, r.postprocessURL, output, requestID)
}

func (r *Runner) arguments(ctx context.Context, req Request) (transcoder.FuncArgs, error) {
	doc := req.Args
	if req.Preprocess {
		Logger().Debug("preprocessing arguments", zap.String("url", r.preprocessURL))
		var err error
		doc, err = preprocess(ctx, r.client, r.preprocessURL, req.Args)
		if err != nil {
			return nil, err
		}
	} else if strings.TrimSpace(doc) == "" {
		return transcoder.FuncArgs{}, nil
	}
	return r.encoder.EncodeJSON([]byte(doc), r.schema)
}

// decode turns a desync panic from the decoder into an error; any other
// panic propagates.
func (r *Runner) decode(exec *Execution) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e, ok := rec.(*errors.Error)
			if !ok || e.Kind != errors.KindDesync {
				panic(rec)
			}
			Logger().Error("return value out of sync with registry", zap.Error(e))
			err = e
		}
	}()
	return r.decoder.DecodeToString(exec.ReturnValues, exec.Memory, exec.ReturnType, exec.Registry, exec.Sizes, r.schema, false)
}
