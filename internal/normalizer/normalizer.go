// Package normalizer resolves the naming variants of analysis results into
// the canonical invoice record.
package normalizer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rezonia/reimburse-report/internal/model"
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Normalizer holds the ordered alias tables
type Normalizer struct {
	groups map[Group][]string
	chains []Chain
}

// New creates a normalizer with every known alias
func New() *Normalizer {
	return &Normalizer{
		groups: defaultGroupAliases(),
		chains: defaultChains(),
	}
}

var defaultNormalizer = New()

// Normalize resolves raw with the default alias tables
func Normalize(raw RawResponse) *model.Record {
	return defaultNormalizer.Normalize(raw)
}

// Normalize builds the canonical record. It reads raw only and never fails:
// fields no alias supplies hold the missing marker.
func (n *Normalizer) Normalize(raw RawResponse) *model.Record {
	rec := &model.Record{}
	root := gjson.ParseBytes(raw)

	groups := make(map[Group]gjson.Result, len(groupOrder))
	for _, g := range groupOrder {
		groups[g] = selectGroup(root, n.groups[g])
	}

	for _, c := range n.chains {
		*c.at(rec) = toValue(resolve(root, groups[c.Group], c.Aliases))
	}

	rec.Verification = model.Verification{Raw: toValue(groups[GroupVerification])}
	return rec
}

// AddAlias appends a newly observed historical name to the end of a field's chain.
// Prefix the alias with "$." to look it up on the response root.
func (n *Normalizer) AddAlias(group Group, field, alias string) error {
	if !aliasPattern.MatchString(strings.TrimPrefix(alias, rootPrefix)) {
		return fmt.Errorf("invalid alias %q", alias)
	}
	for i := range n.chains {
		c := &n.chains[i]
		if c.Group == group && c.Field == field {
			c.Aliases = append(append([]string(nil), c.Aliases...), alias)
			return nil
		}
	}
	return fmt.Errorf("unknown field %s.%s", group, field)
}

// Chains returns the field alias chains in resolution order
func (n *Normalizer) Chains() []Chain {
	out := make([]Chain, len(n.chains))
	for i, c := range n.chains {
		out[i] = Chain{Group: c.Group, Field: c.Field, Aliases: append([]string(nil), c.Aliases...)}
	}
	return out
}

// GroupAliases returns the accepted names of a top-level group
func (n *Normalizer) GroupAliases(g Group) []string {
	return append([]string(nil), n.groups[g]...)
}

// Chains returns the default field alias chains
func Chains() []Chain {
	return defaultNormalizer.Chains()
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

func selectGroup(root gjson.Result, aliases []string) gjson.Result {
	for _, alias := range aliases {
		if g := root.Get(alias); present(g) {
			return g
		}
	}
	return gjson.Result{}
}

func resolve(root, group gjson.Result, aliases []string) gjson.Result {
	for _, alias := range aliases {
		var r gjson.Result
		if key, ok := strings.CutPrefix(alias, rootPrefix); ok {
			r = root.Get(key)
		} else if group.IsObject() {
			r = group.Get(alias)
		}
		if present(r) {
			return r
		}
	}
	return gjson.Result{}
}

func toValue(r gjson.Result) model.Value {
	switch {
	case !present(r):
		return model.Missing()
	case r.Type == gjson.String:
		return model.ValueOf(r.Str)
	case r.Type == gjson.Number:
		return model.ValueOf(json.Number(r.Raw))
	case r.Type == gjson.True || r.Type == gjson.False:
		return model.ValueOf(r.Bool())
	}
	var v model.Value
	if err := json.Unmarshal([]byte(r.Raw), &v); err != nil {
		return model.Missing()
	}
	return v
}
