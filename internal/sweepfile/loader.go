package sweepfile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/sweep"
)

// Definition is a loaded sweep.
type Definition struct {
	// Path is the file the definition came from, if any.
	Path      string
	Axes      sweep.AxisSet
	Objective *ExpressionFunc
	Settings  Settings
	Output    Output
}

// Settings holds optional execution settings. Zero values mean "not set".
type Settings struct {
	Workers      int
	MaxChunkSize int
	Timeout      time.Duration
}

// Output holds optional result destinations. Nil or empty values mean "not set".
type Output struct {
	File      string
	Separator string
	Columns   []string
	Timestamp *bool
}

// fileRoot decodes the top-level blocks of a sweep file.
type fileRoot struct {
	Settings  *settingsBlock  `hcl:"settings,block"`
	Axes      []*axisBlock    `hcl:"axis,block"`
	Objective *objectiveBlock `hcl:"objective,block"`
	Output    *outputBlock    `hcl:"output,block"`
}

type settingsBlock struct {
	Workers      *int    `hcl:"workers,optional"`
	MaxChunkSize *int    `hcl:"max_chunk_size,optional"`
	Timeout      *string `hcl:"timeout,optional"`
}

type axisBlock struct {
	Name   string    `hcl:"name,label"`
	Values cty.Value `hcl:"values,optional"`
	Range  *string   `hcl:"range,optional"`
}

type objectiveBlock struct {
	Result hcl.Expression `hcl:"result"`
}

type outputBlock struct {
	File      *string  `hcl:"file,optional"`
	Separator *string  `hcl:"separator,optional"`
	Columns   []string `hcl:"columns,optional"`
	Timestamp *bool    `hcl:"timestamp,optional"`
}

// Load reads and decodes the sweep file at path.
func Load(path string) (*Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("reading sweep file: %v", err)
	}
	return Parse(src, path)
}

// Parse decodes a sweep definition from src. filename is used in diagnostics.
// All problems are reported as ConfigError.
func Parse(src []byte, filename string) (*Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, apperrors.NewConfigError("failed to parse sweep file %s: %s", filename, diags.Error())
	}

	evalCtx := &hcl.EvalContext{Functions: Functions()}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
		return nil, apperrors.NewConfigError("failed to decode sweep file %s: %s", filename, diags.Error())
	}

	def := &Definition{Path: filename}

	axes := make([]sweep.Axis, 0, len(root.Axes))
	for _, block := range root.Axes {
		values, err := block.values()
		if err != nil {
			return nil, apperrors.NewConfigError("%s: axis %q: %v", filename, block.Name, err)
		}
		axes = append(axes, sweep.Axis{Name: block.Name, Values: values})
	}
	set, err := sweep.NewAxisSet(axes...)
	if err != nil {
		return nil, err
	}
	def.Axes = set

	if root.Objective == nil {
		return nil, apperrors.NewConfigError("%s: missing objective block", filename)
	}
	r := root.Objective.Result.Range()
	def.Objective = NewExpressionFunc(root.Objective.Result, string(r.SliceBytes(src)))

	if root.Settings != nil {
		if def.Settings, err = root.Settings.decode(); err != nil {
			return nil, apperrors.NewConfigError("%s: settings: %v", filename, err)
		}
	}
	if root.Output != nil {
		def.Output = root.Output.decode()
	}
	return def, nil
}

func (b *axisBlock) values() ([]any, error) {
	hasValues := !b.Values.IsNull()
	hasRange := b.Range != nil
	switch {
	case hasValues && hasRange:
		return nil, fmt.Errorf("values and range are mutually exclusive")
	case hasRange:
		spec, err := sweep.ParseRangeSpec(*b.Range)
		if err != nil {
			return nil, err
		}
		return spec.Values()
	case !hasValues:
		return nil, fmt.Errorf("one of values or range is required")
	}

	ty := b.Values.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, fmt.Errorf("values must be a list, got %s", ty.FriendlyName())
	}
	native, err := FromCtyValue(b.Values)
	if err != nil {
		return nil, err
	}
	return native.([]any), nil
}

func (b *settingsBlock) decode() (Settings, error) {
	var s Settings
	if b.Workers != nil {
		if *b.Workers < 1 {
			return s, fmt.Errorf("workers must be positive, got %d", *b.Workers)
		}
		s.Workers = *b.Workers
	}
	if b.MaxChunkSize != nil {
		if *b.MaxChunkSize < 1 {
			return s, fmt.Errorf("max_chunk_size must be positive, got %d", *b.MaxChunkSize)
		}
		s.MaxChunkSize = *b.MaxChunkSize
	}
	if b.Timeout != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*b.Timeout))
		if err != nil {
			return s, fmt.Errorf("timeout: %w", err)
		}
		s.Timeout = d
	}
	return s, nil
}

func (b *outputBlock) decode() Output {
	var o Output
	if b.File != nil {
		o.File = *b.File
	}
	if b.Separator != nil {
		o.Separator = *b.Separator
	}
	o.Columns = b.Columns
	o.Timestamp = b.Timestamp
	return o
}
