package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonlit/internal/compiler"
	"github.com/mcncl/jsonlit/internal/errors"
)

// DefaultHeader marks generated files.
const DefaultHeader = "// Code generated by jsonlit. DO NOT EDIT."

// Options controls the shape of the generated file.
type Options struct {
	Package      string // package clause, defaults to "main"
	FuncName     string // exported function name, normalized with strcase
	TargetType   string // return type of the generated function
	TargetImport string // import path of the target type's package, if any
	Header       string // file header comment, DefaultHeader when empty
}

// Generator assembles a complete Go source file around a compiled fragment
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateFile wraps fragment in a file: header, package clause, grouped
// imports, and one exported function returning the built value. The fragment
// must have been compiled at indent depth 1 (compiler.CompileAt) so its lines
// sit correctly inside the function body.
func (g *Generator) GenerateFile(fragment compiler.Fragment, opts Options) (string, error) {
	if strings.TrimSpace(fragment.Code) == "" {
		return "", errors.NewGenerateError("empty fragment", nil)
	}
	if opts.Package == "" {
		opts.Package = "main"
	}
	if opts.FuncName == "" {
		opts.FuncName = "BuildValue"
	}
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}
	funcName := strcase.ToCamel(opts.FuncName)

	var buf bytes.Buffer

	buf.WriteString(opts.Header + "\n\n")
	buf.WriteString(fmt.Sprintf("package %s\n", opts.Package))

	// Collect imports: whatever the fragment needs plus the target package
	imports := make(map[string]struct{}, len(fragment.Imports)+1)
	for imp := range fragment.Imports {
		imports[imp] = struct{}{}
	}
	if opts.TargetImport != "" {
		imports[opts.TargetImport] = struct{}{}
	}

	if len(imports) > 0 {
		buf.WriteString("\nimport (\n")

		// Sort imports for consistent output
		sorted := make([]string, 0, len(imports))
		for imp := range imports {
			sorted = append(sorted, imp)
		}
		sort.Strings(sorted)

		// Separate standard library imports from third-party imports
		stdLibImports := make([]string, 0)
		thirdPartyImports := make([]string, 0)
		for _, imp := range sorted {
			if !strings.Contains(imp, ".") { // Standard library imports don't have dots
				stdLibImports = append(stdLibImports, imp)
			} else {
				thirdPartyImports = append(thirdPartyImports, imp)
			}
		}

		// Write standard library imports first
		for _, imp := range stdLibImports {
			buf.WriteString(fmt.Sprintf("\t%q\n", imp))
		}

		// Add a blank line between standard library and third-party imports if both exist
		if len(stdLibImports) > 0 && len(thirdPartyImports) > 0 {
			buf.WriteString("\n")
		}

		// Write third-party imports
		for _, imp := range thirdPartyImports {
			buf.WriteString(fmt.Sprintf("\t%q\n", imp))
		}

		buf.WriteString(")\n")
	}

	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("// %s builds the value the literal describes.\n", funcName))
	buf.WriteString(fmt.Sprintf("func %s() %s {\n", funcName, opts.TargetType))
	buf.WriteString(fmt.Sprintf("\treturn %s\n", fragment.Code))
	buf.WriteString("}\n")

	return buf.String(), nil
}
