package model

import "strings"

// UnnamedSource is the title given to a structured source without one
const UnnamedSource = "unnamed source"

// Source is a citation attached to an analysis group: either a plain Label
// or a structured Reference.
type Source interface {
	Text() string
	isSource()
}

// Label is a plain-text source
type Label string

func (l Label) Text() string { return string(l) }
func (Label) isSource()      {}

// Reference is a structured source. Title is never empty.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

func (r Reference) Text() string { return r.Title }
func (Reference) isSource()      {}

// SourcesOf converts a resolved sources field into citations
func SourcesOf(v Value) []Source {
	items := v.Items()
	if len(items) == 0 {
		return nil
	}
	sources := make([]Source, 0, len(items))
	for _, item := range items {
		if _, ok := item.Raw().(map[string]any); ok {
			sources = append(sources, referenceOf(item))
			continue
		}
		if s := item.String(); s != "" {
			sources = append(sources, Label(s))
		}
	}
	return sources
}

func referenceOf(item Value) Reference {
	ref := Reference{Title: UnnamedSource}
	for _, key := range []string{"title", "name", "source"} {
		if s := item.Get(key).String(); s != "" {
			ref.Title = s
			break
		}
	}
	ref.URL = strings.TrimSpace(item.Get("url").String())
	return ref
}
