package generator

import (
	"slices"
	"strings"

	"github.com/erraggy/oasgen/emitter/transformers"
	"github.com/erraggy/oasgen/emitter/typescript"
	"github.com/erraggy/oasgen/emitter/valibot"
	"github.com/erraggy/oasgen/emitter/zod"
	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/symbols"
	"github.com/erraggy/oasgen/walker"
)

// Flavor names an output flavor.
type Flavor string

const (
	// FlavorTypeScript emits static TypeScript types.
	FlavorTypeScript Flavor = "typescript"
	// FlavorZod emits zod 4 schemas.
	FlavorZod Flavor = "zod"
	// FlavorZodV3 emits zod 3 schemas imported from "zod/v3".
	FlavorZodV3 Flavor = "zod-v3"
	// FlavorZodMini emits schemas for the functional "zod/mini" API.
	FlavorZodMini Flavor = "zod-mini"
	// FlavorValibot emits valibot schemas.
	FlavorValibot Flavor = "valibot"
	// FlavorTransformers emits response transformers.
	FlavorTransformers Flavor = "transformers"
)

// flavorOrder is the generation order. Types come first so later flavors
// can look up type names.
var flavorOrder = []Flavor{
	FlavorTypeScript,
	FlavorZod,
	FlavorZodV3,
	FlavorZodMini,
	FlavorValibot,
	FlavorTransformers,
}

// AllFlavors returns every supported flavor in generation order.
func AllFlavors() []Flavor {
	return slices.Clone(flavorOrder)
}

// ParseFlavor validates a flavor name. Names are case-insensitive.
func ParseFlavor(s string) (Flavor, error) {
	f := Flavor(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(flavorOrder, f) {
		return f, nil
	}
	return "", &oaserrors.ConfigError{Option: "flavor", Value: s, Message: "unknown flavor"}
}

// ParseFlavors parses flavor names, each of which may be a comma-separated
// list.
func ParseFlavors(names ...string) ([]Flavor, error) {
	var out []Flavor
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFlavor(part)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// FileName returns the name of the file the flavor generates.
func (f Flavor) FileName() string {
	switch f {
	case FlavorZod, FlavorZodV3, FlavorZodMini:
		return "zod.gen.ts"
	case FlavorTypeScript:
		return "types.gen.ts"
	}
	return string(f) + ".gen.ts"
}

// isZod reports whether f is one of the zod variants.
func (f Flavor) isZod() bool {
	return f == FlavorZod || f == FlavorZodV3 || f == FlavorZodMini
}

// normalizeFlavors dedupes flavors and sorts them into generation order.
// Two zod variants would write the same file and are rejected.
func normalizeFlavors(flavors []Flavor) ([]Flavor, error) {
	if len(flavors) == 0 {
		return []Flavor{FlavorTypeScript}, nil
	}
	var out []Flavor
	var zodFlavor Flavor
	for _, f := range flavorOrder {
		if !slices.Contains(flavors, f) {
			continue
		}
		if f.isZod() {
			if zodFlavor != "" {
				return nil, &oaserrors.ConfigError{
					Option:  "flavor",
					Value:   string(f),
					Message: "conflicts with " + string(zodFlavor) + "; choose one zod variant",
				}
			}
			zodFlavor = f
		}
		out = append(out, f)
	}
	for _, f := range flavors {
		if !slices.Contains(flavorOrder, f) {
			return nil, &oaserrors.ConfigError{Option: "flavor", Value: string(f), Message: "unknown flavor"}
		}
	}
	return out, nil
}

// newEmitter builds the emitter of f. types is the file of the
// typescript flavor when it ran before.
func (g *Generator) newEmitter(f Flavor, doc *graph.Document, types *symbols.File) walker.Emitter {
	switch f {
	case FlavorZod, FlavorZodV3, FlavorZodMini:
		version := zod.V4
		switch f {
		case FlavorZodV3:
			version = zod.V3
		case FlavorZodMini:
			version = zod.Mini
		}
		return zod.New(zod.WithVersion(version), zod.WithInferTypes(g.InferTypes))
	case FlavorValibot:
		return valibot.New()
	case FlavorTransformers:
		if types != nil {
			return transformers.New(doc, transformers.WithTypes(types, transformers.DefaultTypesModule))
		}
		return transformers.New(doc)
	}
	return typescript.New()
}
