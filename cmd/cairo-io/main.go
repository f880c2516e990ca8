package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/cairo-io/agent"
	"github.com/wippyai/cairo-io/config"
	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/schema"
	"github.com/wippyai/cairo-io/transcoder"
)

const usage = `Usage: cairo-io [-v] <command> [flags]

Commands:
  encode   -schema <file> -args <json|@file> [-format json|cbor] [-i]
  decode   -schema <file> -fixture <file> [-pretty]
  flatten  -fixture <file> [-format json|cbor]
  run      -fixture <file> [-manifest <dir>] [-schema <file>] [-args <json|@file>] [-preprocess] [-postprocess]
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("cairo-io", flag.ContinueOnError)
	global.SetOutput(stderr)
	verbose := global.Bool("v", false, "Verbose logging to stderr")
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer func() { _ = logger.Sync() }()
		transcoder.SetLogger(logger)
		agent.SetLogger(logger)
		defer transcoder.SetLogger(nil)
		defer agent.SetLogger(nil)
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	var err error
	switch cmd {
	case "encode":
		err = runEncode(rest, stdout, stderr)
	case "decode":
		err = runDecode(rest, stdout, stderr)
	case "flatten":
		err = runFlatten(rest, stdout, stderr)
	case "run":
		return runAgent(rest, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		global.Usage()
		return 2
	}

	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runEncode(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaFile := fs.String("schema", "", "Path to the cairo_schema.yaml file")
	jsonArgs := fs.String("args", "", "JSON arguments, or @file to read them from a file")
	format := fs.String("format", "json", "Output format: json or cbor")
	interactive := fs.Bool("i", false, "Interactive mode with TUI")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *schemaFile == "" {
		return fmt.Errorf("encode: -schema is required")
	}

	s, err := schema.Load(*schemaFile)
	if err != nil {
		return err
	}
	if *interactive {
		return runInteractive(*schemaFile, s)
	}

	doc, err := readArg(*jsonArgs)
	if err != nil {
		return err
	}
	encoded, err := transcoder.NewEncoder().EncodeJSON([]byte(doc), s)
	if err != nil {
		return err
	}
	return writeArgs(stdout, encoded, *format)
}

func runDecode(args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaFile := fs.String("schema", "", "Path to the cairo_schema.yaml file")
	fixtureFile := fs.String("fixture", "", "Path to a recorded run")
	pretty := fs.Bool("pretty", isTerminal(stdout), "Indent the JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *schemaFile == "" || *fixtureFile == "" {
		return fmt.Errorf("decode: -schema and -fixture are required")
	}

	s, err := schema.Load(*schemaFile)
	if err != nil {
		return err
	}
	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		return err
	}

	defer recoverDesync(&err)
	out, err := transcoder.NewDecoder().DecodeToString(fx.ReturnValues, fx.Memory, fx.ReturnType, fx.Registry, fx.Sizes, s, *pretty)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func runFlatten(args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("flatten", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fixtureFile := fs.String("fixture", "", "Path to a recorded run")
	format := fs.String("format", "json", "Output format: json or cbor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fixtureFile == "" {
		return fmt.Errorf("flatten: -fixture is required")
	}

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		return err
	}

	defer recoverDesync(&err)
	felts := transcoder.NewFlattener().Flatten(fx.ReturnValues, fx.Memory, fx.ReturnType, fx.Registry, fx.Sizes)
	return writeArgs(stdout, transcoder.FuncArgs{transcoder.ArrayArg(felts)}, *format)
}

// runAgent replays a recorded run through the agent runner and prints the
// status envelope. Its exit code follows the envelope.
func runAgent(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fixtureFile := fs.String("fixture", "", "Path to a recorded run")
	manifestDir := fs.String("manifest", ".", "Directory to search for Scarb.toml")
	schemaFile := fs.String("schema", "", "Override the [tool.agent] cairo_schema path")
	jsonArgs := fs.String("args", "", "JSON arguments, or @file to read them from a file")
	pre := fs.Bool("preprocess", false, "Send the arguments through the preprocess hook")
	post := fs.Bool("postprocess", false, "Send the result through the postprocess hook")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	output, err := func() (string, error) {
		if *fixtureFile == "" {
			return "", errors.InvalidInput(errors.PhaseConfig, "run: -fixture is required")
		}
		m, err := config.FindAndLoad(*manifestDir)
		if err != nil {
			return "", err
		}
		if m == nil {
			m = config.Default(*manifestDir)
		}
		s, err := schema.Load(m.SchemaPath(*schemaFile))
		if err != nil {
			return "", err
		}
		fx, err := loadFixture(*fixtureFile)
		if err != nil {
			return "", err
		}
		doc, err := readArg(*jsonArgs)
		if err != nil {
			return "", err
		}
		r := agent.NewRunner(fx, s, agent.WithManifest(m))
		return r.Run(context.Background(), agent.Request{Args: doc, Preprocess: *pre, Postprocess: *post})
	}()

	data, code := agent.Envelope(output, err)
	fmt.Fprintln(stdout, string(data))
	return code
}

// readArg returns v, or the contents of the file it names when prefixed with '@'.
func readArg(v string) (string, error) {
	if path, ok := strings.CutPrefix(v, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read args: %w", err)
		}
		return string(data), nil
	}
	return v, nil
}

func writeArgs(w io.Writer, args transcoder.FuncArgs, format string) error {
	switch format {
	case "json":
		data, err := json.Marshal(args)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "cbor":
		data, err := marshalCBOR(args)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// recoverDesync converts a decoder desync panic into *err.
func recoverDesync(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(*errors.Error)
		if !ok || e.Kind != errors.KindDesync {
			panic(r)
		}
		*err = e
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
