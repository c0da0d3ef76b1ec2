package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/lukasmwerner/harper/pkg/document"
)

// DocumentValue exposes a document to scripts as
// struct(text, tokens=[struct(text, kind, start, end), ...], options).
// A nil options value becomes an empty dict.
func DocumentValue(doc *document.Document, options starlark.Value) starlark.Value {
	if options == nil {
		options = emptyOptions
	}
	toks := doc.Tokens()
	list := make([]starlark.Value, len(toks))
	for i, tok := range toks {
		list[i] = starlarkstruct.FromStringDict(starlark.String("token"), starlark.StringDict{
			"text":  starlark.String(doc.TokenText(tok)),
			"kind":  starlark.String(tok.Kind.String()),
			"start": starlark.MakeInt(tok.Span.Start),
			"end":   starlark.MakeInt(tok.Span.End),
		})
	}
	tokens := starlark.NewList(list)
	tokens.Freeze()
	return starlarkstruct.FromStringDict(starlark.String("document"), starlark.StringDict{
		"text":    starlark.String(doc.Text()),
		"tokens":  tokens,
		"options": options,
	})
}

var emptyOptions = func() *starlark.Dict {
	d := starlark.NewDict(0)
	d.Freeze()
	return d
}()

// OptionsValue converts rule options from configuration into a frozen dict.
func OptionsValue(opts map[string]any) (starlark.Value, error) {
	if len(opts) == 0 {
		return emptyOptions, nil
	}
	v, err := GoToStarlark(opts)
	if err != nil {
		return nil, err
	}
	v.Freeze()
	return v, nil
}

// GoToStarlark converts a configuration value to Starlark. Maps must have
// string keys.
func GoToStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil
	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := GoToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil
	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, item := range val {
			sv, err := GoToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported option type %T", v)
	}
}

// ToGo converts a Starlark value back to a Go value.
// Returns: string, int64, float64, bool, []any, map[string]any, or nil.
// Structs become maps of their fields.
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return string(val), nil
	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s out of range", val.String())
		}
		return i64, nil
	case starlark.Float:
		return float64(val), nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.Indexable:
		result := make([]any, val.Len())
		for i := range val.Len() {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil
	case *starlark.Dict:
		result := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := ToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", string(key), err)
			}
			result[string(key)] = gv
		}
		return result, nil
	case *starlarkstruct.Struct:
		result := make(map[string]any)
		for _, name := range val.AttrNames() {
			field, err := val.Attr(name)
			if err != nil {
				return nil, err
			}
			gv, err := ToGo(field)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			result[name] = gv
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported starlark type %s", v.Type())
	}
}
