package gemini

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultModel is the model used when no configuration names one.
const DefaultModel = "gemini-2.5-pro"

// Options configures a single Gemini CLI invocation.
type Options struct {
	Model           string `json:"model"             yaml:"model"             jsonschema:"Gemini model to use"`
	Sandbox         bool   `json:"sandbox"           yaml:"sandbox"           jsonschema:"run in sandbox mode"`
	Debug           bool   `json:"debug"             yaml:"debug"             jsonschema:"enable debug mode"`
	AllFiles        bool   `json:"all_files"         yaml:"all_files"         jsonschema:"include all files in context"`
	ShowMemoryUsage bool   `json:"show_memory_usage" yaml:"show_memory_usage" jsonschema:"show memory usage"`
	Yolo            bool   `json:"yolo"              yaml:"yolo"              jsonschema:"auto-accept all actions"`
	Checkpointing   bool   `json:"checkpointing"     yaml:"checkpointing"     jsonschema:"enable checkpointing"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Model: DefaultModel}
}

// booleanFlag ties an option field to the CLI flag it enables.
type booleanFlag struct {
	field string
	flag  string
	get   func(Options) bool
	set   func(*Options, bool)
}

// booleanFlags is ordered: flags are emitted in exactly this order.
var booleanFlags = []booleanFlag{
	{"sandbox", "-s", func(o Options) bool { return o.Sandbox }, func(o *Options, v bool) { o.Sandbox = v }},
	{"debug", "-d", func(o Options) bool { return o.Debug }, func(o *Options, v bool) { o.Debug = v }},
	{"all_files", "-a", func(o Options) bool { return o.AllFiles }, func(o *Options, v bool) { o.AllFiles = v }},
	{"show_memory_usage", "--show_memory_usage", func(o Options) bool { return o.ShowMemoryUsage }, func(o *Options, v bool) { o.ShowMemoryUsage = v }},
	{"yolo", "-y", func(o Options) bool { return o.Yolo }, func(o *Options, v bool) { o.Yolo = v }},
	{"checkpointing", "-c", func(o Options) bool { return o.Checkpointing }, func(o *Options, v bool) { o.Checkpointing = v }},
}

// FieldNames returns the option names accepted by Merge, model first.
func FieldNames() []string {
	names := make([]string, 0, len(booleanFlags)+1)
	names = append(names, "model")
	for _, bf := range booleanFlags {
		names = append(names, bf.field)
	}
	return names
}

// Fields returns the options as a name -> value map keyed by FieldNames.
// The model is a string; every other value is a bool.
func (o Options) Fields() map[string]any {
	return o.fieldMap()
}

// fieldMap converts the options to a plain name -> value map.
func (o Options) fieldMap() map[string]any {
	fields := map[string]any{"model": o.Model}
	for _, bf := range booleanFlags {
		fields[bf.field] = bf.get(o)
	}
	return fields
}

// Merge returns a copy of o with the named fields overridden.
// Unknown names and values of the wrong type fail with *ValidationError;
// o itself is never modified.
func (o Options) Merge(overrides map[string]any) (Options, error) {
	fields := o.fieldMap()

	// Sorted so the reported error is deterministic when several keys are bad.
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, known := fields[key]; !known {
			return Options{}, &ValidationError{
				Field:  key,
				Reason: "unknown option (valid: " + strings.Join(FieldNames(), ", ") + ")",
			}
		}
		fields[key] = overrides[key]
	}

	return optionsFromMap(fields)
}

// optionsFromMap reconstructs and validates Options from a complete field map.
func optionsFromMap(fields map[string]any) (Options, error) {
	var opts Options

	model, ok := fields["model"].(string)
	if !ok {
		return Options{}, &ValidationError{
			Field:  "model",
			Reason: fmt.Sprintf("expected string, got %T", fields["model"]),
		}
	}
	if strings.TrimSpace(model) == "" {
		return Options{}, &ValidationError{Field: "model", Reason: "must not be empty"}
	}
	opts.Model = model

	for _, bf := range booleanFlags {
		value, ok := fields[bf.field].(bool)
		if !ok {
			return Options{}, &ValidationError{
				Field:  bf.field,
				Reason: fmt.Sprintf("expected boolean, got %T", fields[bf.field]),
			}
		}
		bf.set(&opts, value)
	}

	return opts, nil
}

// ParseValue converts a command-line string into the value type Merge expects
// for field: the model stays a string, every other field is parsed as a bool.
func ParseValue(field, raw string) (any, error) {
	if field == "model" {
		return raw, nil
	}
	if _, known := (Options{}).fieldMap()[field]; !known {
		return nil, &ValidationError{
			Field:  field,
			Reason: "unknown option (valid: " + strings.Join(FieldNames(), ", ") + ")",
		}
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected boolean, got %q", raw)}
	}
	return value, nil
}
