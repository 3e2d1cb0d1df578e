package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonlit/internal/compiler"
	"github.com/mcncl/jsonlit/internal/config"
	"github.com/mcncl/jsonlit/internal/errors"
	"github.com/mcncl/jsonlit/internal/formatter"
	"github.com/mcncl/jsonlit/internal/generator"
	"github.com/mcncl/jsonlit/internal/lexer"
)

// CLI defines the command-line interface
var CLI struct {
	Literal     string `help:"Literal to expand, e.g. '{\"name\": \"example\"}'. If not specified, the literal is read from the input file or stdin." arg:"" optional:""`
	Input       string `help:"Path to a file holding the literal. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output Go file. If not specified, writes to stdout." short:"o" type:"path"`
	Package     string `help:"Package name for generated code." short:"p" default:"main"`
	Func        string `help:"Name of the generated function." default:"BuildValue"`
	Type        string `help:"Target container type the literal compiles into." short:"t" default:"jsonval.Value"`
	TypeImport  string `help:"Import path of the target type's package. Empty means the type lives in the output package."`
	Convention  string `help:"Builder call convention for emitted code." enum:"package,builder" default:"package"`
	BuilderVar  string `help:"Builder variable name for the builder convention." default:"b"`
	Config      string `help:"Path to a .jsonlit.yml config file. Discovered automatically when not set." short:"c" type:"path"`
	Format      bool   `help:"Format the output code according to Go standards." short:"f" default:"true"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct literal input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsonlit"),
		kong.Description("A tool to expand JSON-like literals into Go builder code"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonlit version %s\n", Version)
		return
	}

	// Record which flags the user gave explicitly, so a flag spelled out at
	// its default value still overrides the config file
	setFlags := make(map[string]bool)
	for _, f := range parser.Model.Flags {
		if f.Set {
			setFlags[f.Name] = true
		}
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		Package:    CLI.Package,
		FuncName:   CLI.Func,
		Type:       CLI.Type,
		TypeImport: CLI.TypeImport,
		Convention: CLI.Convention,
		BuilderVar: CLI.BuilderVar,
		Set:        setFlags,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug || cfg.Dev.Debug, Config: cfg})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonlit --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config

	// 1. Read the literal text
	src, err := readInput()
	if err != nil {
		// Error is already wrapped by readInput
		return err
	}

	// 2. Tokenize into a grouped token tree
	tokens, err := lexer.Lex(src)
	if err != nil {
		return err
	}
	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "jsonlit: lexed %d top-level tokens\n", len(tokens))
	}

	// 3. Compile the literal into a construction expression
	conv, err := compiler.ConventionByName(cfg.Target.Convention, cfg.Target.BuilderVar)
	if err != nil {
		return errors.NewInputError(err.Error(), err)
	}
	fragment, err := compiler.NewWithMaxDepth(conv, cfg.MaxDepth).CompileAt(cfg.Target.Type, tokens, 1)
	if err != nil {
		return err
	}

	// 4. Wrap the fragment into a complete Go file
	code, err := generator.NewGenerator().GenerateFile(fragment, generator.Options{
		Package:      cfg.Package,
		FuncName:     cfg.FuncName,
		TargetType:   cfg.Target.Type,
		TargetImport: cfg.Target.Import,
		Header:       cfg.Output.FileHeader,
	})
	if err != nil {
		return err
	}

	// 5. Format the code if requested
	if CLI.Format && cfg.Formatting.Enabled {
		code, err = formatter.NewFormatter().Format(code)
		if err != nil {
			return errors.NewFormatError("failed to format generated code", err)
		}
	}

	// 6. Output the result
	return writeOutput(code)
}

// readInput returns the literal text from the argument, file, or stdin
func readInput() (string, error) {
	if CLI.Literal != "" {
		return CLI.Literal, nil
	}

	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input), err)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input), err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input), errors.ErrEmptyInput)
		}
		return string(data), nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes code to file or stdout
func writeOutput(code string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(code), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Generated Go code written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(strings.TrimSpace(code))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a
// literal and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonlit Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your literal below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	src := builder.String()
	if strings.TrimSpace(src) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing literal...")
	return src, nil
}
