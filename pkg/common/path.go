package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aretw0/adaptor/pkg/domain"
)

// ErrInvalidPath is returned for empty or malformed JSONPath expressions.
var ErrInvalidPath = errors.New("invalid path")

var (
	indexPattern  = regexp.MustCompile(`\[(\d+)\]`)
	quotedPattern = regexp.MustCompile(`\[['"]([^'"\]]+)['"]\]`)
)

// toGJSON converts a JSONPath expression ("$.data.items[0].id",
// "$.items[*].name") into gjson syntax ("data.items.0.id", "items.#.name").
func toGJSON(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if strings.Count(p, "[") != strings.Count(p, "]") {
		return "", fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidPath, path)
	}

	p = strings.TrimPrefix(p, "$")
	p = quotedPattern.ReplaceAllStringFunc(p, func(m string) string {
		// A quoted key is one literal component, so gjson syntax inside it
		// ("a.b", "x*") must not be interpreted.
		return "." + gjson.Escape(quotedPattern.FindStringSubmatch(m)[1])
	})
	p = indexPattern.ReplaceAllString(p, ".$1")
	p = strings.ReplaceAll(p, "[*]", ".#")
	p = strings.TrimPrefix(p, ".")
	p = strings.TrimSuffix(p, ".#")
	if p == "#" {
		p = ""
	}

	if strings.ContainsAny(unescaped(p), "[]") {
		return "", fmt.Errorf("%w: unsupported selector in %q", ErrInvalidPath, path)
	}
	return p, nil
}

// unescaped drops backslash-escaped characters so selector checks only see
// path syntax.
func unescaped(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' {
			i++
			continue
		}
		b.WriteByte(p[i])
	}
	return b.String()
}

// queryAll returns every match of path in doc. A wildcard spreads the
// matched array; otherwise the single match (if any) is returned.
func queryAll(doc []byte, path string) ([]any, error) {
	gp, err := toGJSON(path)
	if err != nil {
		return nil, err
	}

	var res gjson.Result
	if gp == "" {
		res = gjson.ParseBytes(doc)
	} else {
		res = gjson.GetBytes(doc, gp)
	}
	if !res.Exists() {
		return nil, nil
	}

	if strings.Contains(path, "[*]") && res.IsArray() {
		items := res.Array()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, item.Value())
		}
		return out, nil
	}
	return []any{res.Value()}, nil
}

// queryFirst returns the first match of path in doc, or nil.
func queryFirst(doc []byte, path string) (any, error) {
	matches, err := queryAll(doc, path)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func stateDoc(s *domain.State) ([]byte, error) {
	if s == nil {
		return nil, domain.ErrNilState
	}
	return json.Marshal(s)
}

// queryState evaluates path against the JSON form of s.
func queryState(s *domain.State, path string) ([]any, error) {
	doc, err := stateDoc(s)
	if err != nil {
		return nil, err
	}
	return queryAll(doc, path)
}

// SourceValue resolves to the first match of path against the whole state.
func SourceValue(path string) Resolver {
	return ResolverFunc(func(s *domain.State) (any, error) {
		doc, err := stateDoc(s)
		if err != nil {
			return nil, err
		}
		return queryFirst(doc, path)
	})
}

// DataPath prefixes path with "$.data", accepting paths with or without
// their own "$." root.
func DataPath(path string) string {
	clean := strings.TrimPrefix(strings.TrimSpace(path), "$")
	clean = strings.TrimPrefix(clean, ".")
	if clean == "" {
		return "$.data"
	}
	if strings.HasPrefix(clean, "[") {
		return "$.data" + clean
	}
	return "$.data." + clean
}

// DataValue resolves path relative to the state's data.
func DataValue(path string) Resolver {
	return SourceValue(DataPath(path))
}

// LastReferenceValue resolves path against the most recent reference.
// It resolves to nil when there are no references.
func LastReferenceValue(path string) Resolver {
	return ResolverFunc(func(s *domain.State) (any, error) {
		if s == nil {
			return nil, domain.ErrNilState
		}
		if len(s.References) == 0 {
			return nil, nil
		}
		doc, err := json.Marshal(s.References[0])
		if err != nil {
			return nil, err
		}
		return queryFirst(doc, path)
	})
}
