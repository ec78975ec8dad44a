package dispatch

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/staticafi/satt/bench"
)

// WildcardCategory selects the params used for categories without their own entry.
const WildcardCategory = "*"

// Template is the command line run for every benchmark.
//
// Any {key} in Vars is substituted first. The per-benchmark placeholders
// {machine}, {benchmark} (alias {file}), {benchmark-dirname} (alias
// {file-dirname}) and {params} follow, so their values are never rewritten.
type Template struct {
	Command string
	// Params holds tool parameters by category, with WildcardCategory as the fallback.
	Params map[string]string
	Vars   map[string]string
}

// Expand substitutes the placeholders for running item on machine.
func (t *Template) Expand(machine string, item bench.Item) string {
	dir := filepath.Dir(item.Name)
	return strings.NewReplacer(
		"{machine}", machine,
		"{benchmark}", item.Name,
		"{file}", item.Name,
		"{benchmark-dirname}", dir,
		"{file-dirname}", dir,
		"{params}", t.ParamsFor(item.Category),
	).Replace(t.withVars())
}

func (t *Template) withVars() string {
	if len(t.Vars) == 0 {
		return t.Command
	}
	keys := make([]string, 0, len(t.Vars))
	for k := range t.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", t.Vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(t.Command)
}

// ParamsFor returns the params of category, falling back to the wildcard entry.
func (t *Template) ParamsFor(category string) string {
	if p, ok := t.Params[category]; ok {
		return p
	}
	return t.Params[WildcardCategory]
}
