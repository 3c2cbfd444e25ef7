// Package profile loads an optional HCL "conversion profile": a small file
// carrying converter options so that repeated conversions of the same model
// do not depend on remembering the right flag set.
//
// A profile holds at most one conversion block:
//
//	conversion {
//	  multi_top  = true
//	  nest       = 2
//	  out        = "model.xml"
//	  log_level  = "debug"
//	  log_format = "text"
//	}
//
// Every attribute is optional; command-line flags take precedence over
// profile values.
package profile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Profile is the decoded conversion profile. Nil fields were not present in
// the file.
type Profile struct {
	MultiTop  *bool
	Nest      *int
	Out       *string
	LogLevel  *string
	LogFormat *string
}

// fileRoot is the top-level layout of a profile file.
type fileRoot struct {
	Conversion *conversionBlock `hcl:"conversion,block"`
}

// conversionBlock keeps its attributes as raw expressions; evaluation and
// type conversion happen through cty so that a wrong-typed value fails with
// a conversion error naming the attribute instead of a decoder panic.
type conversionBlock struct {
	MultiTop  hcl.Expression `hcl:"multi_top,optional"`
	Nest      hcl.Expression `hcl:"nest,optional"`
	Out       hcl.Expression `hcl:"out,optional"`
	LogLevel  hcl.Expression `hcl:"log_level,optional"`
	LogFormat hcl.Expression `hcl:"log_format,optional"`
}

// Load parses and decodes the profile file at path.
func Load(path string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, diags)
	}

	p := &Profile{}
	if root.Conversion == nil {
		return p, nil
	}
	block := root.Conversion

	if err := evalInto(block.MultiTop, "multi_top", cty.Bool, &p.MultiTop); err != nil {
		return nil, err
	}
	if err := evalInto(block.Nest, "nest", cty.Number, &p.Nest); err != nil {
		return nil, err
	}
	if err := evalInto(block.Out, "out", cty.String, &p.Out); err != nil {
		return nil, err
	}
	if err := evalInto(block.LogLevel, "log_level", cty.String, &p.LogLevel); err != nil {
		return nil, err
	}
	if err := evalInto(block.LogFormat, "log_format", cty.String, &p.LogFormat); err != nil {
		return nil, err
	}
	if p.Nest != nil && *p.Nest < 0 {
		return nil, fmt.Errorf("profile attribute 'nest' must be non-negative, got %d", *p.Nest)
	}
	return p, nil
}

// evalInto evaluates one attribute expression, converts it to the wanted
// cty type, and stores the Go value behind target. An absent attribute
// leaves target nil.
func evalInto[T any](expr hcl.Expression, attr string, want cty.Type, target **T) error {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("in profile attribute '%s': %w", attr, diags)
	}
	if val.IsNull() {
		return nil
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("profile attribute '%s': cannot convert value of type %s to %s: %w",
			attr, val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	out := new(T)
	if err := gocty.FromCtyValue(converted, out); err != nil {
		return fmt.Errorf("profile attribute '%s': %w", attr, err)
	}
	*target = out
	return nil
}
